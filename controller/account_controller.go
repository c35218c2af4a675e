// controller/account_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/service"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
	helper_util "github.com/Dev-Muhammad-Junaid/links-maker/util/helper"
)

type AccountController struct {
	accountService service.IAccountService
}

func NewAccountController(accountService service.IAccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccountController) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", ac.CreateAccount)
		accounts.PUT("/:id", ac.UpdateAccount)
		accounts.DELETE("/:id", ac.DeleteAccount)
		accounts.GET("/:id", ac.GetAccount)
		accounts.GET("", ac.ListAccounts)
	}
}

// CreateAccount endpoint
func (ac *AccountController) CreateAccount(c *gin.Context) {
	var account model.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid account data", lm_errors.ErrInvalidAccountData)
		return
	}

	createdAccount, err := ac.accountService.CreateAccount(c, account)
	if err != nil {
		switch {
		case errors.Is(err, lm_errors.ErrInvalidAccountData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid account data", err)
		case errors.Is(err, lm_errors.ErrAccountConflict):
			util.RespondWithError(c, http.StatusConflict, "Account already exists", err)
		case errors.Is(err, lm_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create account", lm_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, createdAccount)
}

// UpdateAccount endpoint
func (ac *AccountController) UpdateAccount(c *gin.Context) {
	accountID := c.Param("id")
	var account model.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid account data", err)
		return
	}
	account.ID = accountID

	updatedAccount, err := ac.accountService.UpdateAccount(c, account)
	if err != nil {
		if errors.Is(err, lm_errors.ErrAccountNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Account not found", err)
		} else if errors.Is(err, lm_errors.ErrInvalidAccountData) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid account data", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update account", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedAccount)
}

// DeleteAccount endpoint
func (ac *AccountController) DeleteAccount(c *gin.Context) {
	accountID := c.Param("id")

	if err := ac.accountService.DeleteAccount(c, accountID); err != nil {
		if errors.Is(err, lm_errors.ErrAccountNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Account not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccount endpoint
func (ac *AccountController) GetAccount(c *gin.Context) {
	accountID := c.Param("id")

	account, err := ac.accountService.GetAccount(c, accountID)
	if err != nil {
		if errors.Is(err, lm_errors.ErrAccountNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Account not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve account", err)
		}
		return
	}

	c.JSON(http.StatusOK, account)
}

// ListAccounts endpoint
func (ac *AccountController) ListAccounts(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", lm_errors.ErrInvalidPagination)
		return
	}

	accounts, err := ac.accountService.ListAccounts(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}
