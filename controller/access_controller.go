// controller/access_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/service"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
	helper_util "github.com/Dev-Muhammad-Junaid/links-maker/util/helper"
)

type AccessController struct {
	accessService service.IAccessService
}

func NewAccessController(accessService service.IAccessService) *AccessController {
	return &AccessController{
		accessService: accessService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	accessGroup := r.Group("/access")
	{
		accessGroup.POST("/check", ac.CheckAccess)
		accessGroup.POST("/invalidate", ac.Invalidate)
		accessGroup.DELETE("/cache", ac.ClearCache)
	}
	r.GET("/rewrite", ac.Rewrite)
	r.GET("/badge", ac.Badge)
	r.GET("/logs", ac.QueryLogs)
}

// CheckAccess endpoint
func (ac *AccessController) CheckAccess(c *gin.Context) {
	var req model.CheckAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid check request", lm_errors.ErrInvalidCheckRequest)
		return
	}

	reqContext := req.Context
	if reqContext == "" {
		reqContext = util.RequestContext(c)
	}

	resp, err := ac.accessService.CheckAccess(c, req, reqContext)
	if err != nil {
		if errors.Is(err, lm_errors.ErrInvalidCheckRequest) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid check request", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Access check failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Invalidate endpoint drops cached verdicts; an empty object clears everything
func (ac *AccessController) Invalidate(c *gin.Context) {
	var req model.InvalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid invalidate request", err)
		return
	}

	if err := ac.accessService.Invalidate(c, req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid invalidate request", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearCache endpoint
func (ac *AccessController) ClearCache(c *gin.Context) {
	if err := ac.accessService.ClearCache(c); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to clear cache", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rewrite endpoint addresses a URL to an account for navigation
func (ac *AccessController) Rewrite(c *gin.Context) {
	rawURL := c.Query("url")
	authIndex, err := strconv.Atoi(c.DefaultQuery("authIndex", "0"))
	if err != nil || rawURL == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid rewrite request", lm_errors.ErrUnrewritableURL)
		return
	}

	rewritten, err := ac.accessService.RewriteURL(rawURL, authIndex)
	if err != nil {
		util.RespondWithError(c, http.StatusUnprocessableEntity, "URL cannot be rewritten", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": rewritten})
}

// Badge endpoint reports which account index a URL is addressed to
func (ac *AccessController) Badge(c *gin.Context) {
	rawURL := c.Query("url")
	idx, ok := ac.accessService.BadgeIndex(rawURL)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"text": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": strconv.Itoa(idx), "index": idx})
}

// QueryLogs endpoint exposes the probe trail
func (ac *AccessController) QueryLogs(c *gin.Context) {
	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()

	if raw := c.Query("from"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		to = parsed
	}

	logs, err := ac.accessService.QueryProbeLogs(c, from, to, c.Query("accountKey"), c.Query("resourceId"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query probe logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
