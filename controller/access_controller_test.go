// controller/access_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Dev-Muhammad-Junaid/links-maker/controller"
	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	test_mock "github.com/Dev-Muhammad-Junaid/links-maker/test/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger("../logging")
	code := m.Run()
	logger.Sync()
	os.Exit(code)
}

func setupAccessRouter(svc *test_mock.MockAccessService) *gin.Engine {
	router := gin.New()
	api := router.Group("/")
	controller.NewAccessController(svc).RegisterRoutes(api)
	return router
}

func TestCheckAccessEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	t.Run("Success", func(t *testing.T) {
		svc.On("CheckAccess", mock.Anything, mock.Anything, "popup").
			Return(&model.CheckAccessResponse{
				OK:        true,
				Supported: true,
				Results: map[int]model.AccessResult{
					0: {Status: model.StatusAccess, Code: 200},
				},
			}, nil).Once()

		body := strings.NewReader(`{"url":"https://docs.google.com/document/d/abc/edit","context":"popup"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.CheckAccessResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Supported)
		assert.Equal(t, model.StatusAccess, resp.Results[0].Status)
	})

	t.Run("HeaderContextFallback", func(t *testing.T) {
		svc.On("CheckAccess", mock.Anything, mock.Anything, "content").
			Return(&model.CheckAccessResponse{OK: true, Supported: true, Results: map[int]model.AccessResult{}}, nil).Once()

		body := strings.NewReader(`{"url":"https://docs.google.com/document/d/abc/edit"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		req.Header.Set("X-Request-Context", "content")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MissingURL", func(t *testing.T) {
		body := strings.NewReader(`{"context":"popup"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		svc.On("CheckAccess", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, lm_errors.ErrInvalidCheckRequest).Once()

		body := strings.NewReader(`{"url":"not-absolute"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvalidateEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	t.Run("Success", func(t *testing.T) {
		svc.On("Invalidate", mock.Anything, model.InvalidateRequest{ResourceID: "document:abc"}).
			Return(nil).Once()

		body := strings.NewReader(`{"resource_id":"document:abc"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/invalidate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Rejected", func(t *testing.T) {
		svc.On("Invalidate", mock.Anything, mock.Anything).
			Return(lm_errors.ErrInvalidCheckRequest).Once()

		body := strings.NewReader(`{"account_key":"auth:1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/invalidate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClearCacheEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	svc.On("ClearCache", mock.Anything).Return(nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/access/cache", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRewriteEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	t.Run("Success", func(t *testing.T) {
		svc.On("RewriteURL", "https://docs.google.com/document/d/abc/edit", 1).
			Return("https://docs.google.com/document/u/1/d/abc/edit?authuser=1", nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rewrite?url=https%3A%2F%2Fdocs.google.com%2Fdocument%2Fd%2Fabc%2Fedit&authIndex=1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "authuser=1")
	})

	t.Run("Unrewritable", func(t *testing.T) {
		svc.On("RewriteURL", mock.Anything, mock.Anything).
			Return("", lm_errors.ErrUnrewritableURL).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rewrite?url=%2Frelative", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MissingURL", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rewrite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBadgeEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	t.Run("Addressed", func(t *testing.T) {
		svc.On("BadgeIndex", mock.Anything).Return(2, true).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/badge?url=https%3A%2F%2Fdocs.google.com%2F%3Fauthuser%3D2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"text":"2"`)
	})

	t.Run("Unaddressed", func(t *testing.T) {
		svc.On("BadgeIndex", mock.Anything).Return(0, false).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/badge?url=https%3A%2F%2Fdocs.google.com%2F", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"text":""`)
	})
}

func TestQueryLogsEndpoint(t *testing.T) {
	svc := new(test_mock.MockAccessService)
	router := setupAccessRouter(svc)

	svc.On("QueryProbeLogs", mock.Anything, mock.Anything, mock.Anything, "auth:1", "document:abc").
		Return(nil, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/logs?accountKey=auth%3A1&resourceId=document%3Aabc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
