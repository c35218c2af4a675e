// service/account_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Dev-Muhammad-Junaid/links-maker/dao"
	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

type IAccountService interface {
	CreateAccount(ctx context.Context, account model.Account) (*model.Account, error)
	UpdateAccount(ctx context.Context, account model.Account) (*model.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]model.Account, error)
	EnsureDefaultAccounts(ctx context.Context) error
}

// AccountService handles business logic for account configuration
type AccountService struct {
	accountDAO      *dao.AccountDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(accountDAO *dao.AccountDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus) *AccountService {
	return &AccountService{
		accountDAO:      accountDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

// CreateAccount handles the creation of a new account
func (s *AccountService) CreateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	if err := s.validationUtil.ValidateAccount(account); err != nil {
		return nil, lm_errors.ErrInvalidAccountData
	}

	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	accountID, err := s.accountDAO.CreateAccount(ctx, account)
	if err != nil {
		logger.Error("Error creating account", zap.Error(err), zap.String("label", account.Label))
		return nil, err
	}
	account.ID = accountID

	// Update cache
	if err := s.cacheService.SetAccount(ctx, account); err != nil {
		logger.Warn("Failed to cache account", zap.Error(err), zap.String("accountID", accountID))
	}
	if err := s.cacheService.DeleteAccountList(ctx); err != nil {
		logger.Warn("Failed to invalidate account list cache", zap.Error(err))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "account.created", account)

	if err := s.notificationSvc.NotifyAccountChange(ctx, "created", account); err != nil {
		logger.Warn("Failed to send account creation notification", zap.Error(err))
	}

	logger.Info("Account created successfully", zap.String("accountID", accountID))
	return &account, nil
}

// UpdateAccount handles updates to an existing account
func (s *AccountService) UpdateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	if err := s.validationUtil.ValidateAccount(account); err != nil {
		return nil, lm_errors.ErrInvalidAccountData
	}

	oldAccount, err := s.accountDAO.GetAccount(ctx, account.ID)
	if err != nil {
		logger.Error("Error retrieving existing account", zap.Error(err), zap.String("accountID", account.ID))
		return nil, err
	}

	account.CreatedAt = oldAccount.CreatedAt
	account.UpdatedAt = time.Now()

	updatedAccount, err := s.accountDAO.UpdateAccount(ctx, account)
	if err != nil {
		logger.Error("Error updating account", zap.Error(err), zap.String("accountID", account.ID))
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetAccount(ctx, *updatedAccount); err != nil {
		logger.Warn("Failed to update account in cache", zap.Error(err), zap.String("accountID", account.ID))
	}
	if err := s.cacheService.DeleteAccountList(ctx); err != nil {
		logger.Warn("Failed to invalidate account list cache", zap.Error(err))
	}

	// Publish event for asynchronous processing; the access service uses the
	// old account to drop index-keyed verdicts on reindex.
	s.eventBus.Publish(ctx, "account.updated", map[string]interface{}{
		"old": *oldAccount,
		"new": *updatedAccount,
	})

	if err := s.notificationSvc.NotifyAccountChange(ctx, "updated", *updatedAccount); err != nil {
		logger.Warn("Failed to send account update notification", zap.Error(err))
	}

	logger.Info("Account updated successfully", zap.String("accountID", account.ID))
	return updatedAccount, nil
}

// DeleteAccount handles the deletion of an account
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	oldAccount, err := s.accountDAO.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accountDAO.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Error deleting account", zap.Error(err), zap.String("accountID", accountID))
		return err
	}

	// Remove from cache
	if err := s.cacheService.DeleteAccount(ctx, accountID); err != nil {
		logger.Warn("Failed to delete account from cache", zap.Error(err), zap.String("accountID", accountID))
	}
	if err := s.cacheService.DeleteAccountList(ctx); err != nil {
		logger.Warn("Failed to invalidate account list cache", zap.Error(err))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "account.deleted", *oldAccount)

	if err := s.notificationSvc.NotifyAccountChange(ctx, "deleted", *oldAccount); err != nil {
		logger.Warn("Failed to send account deletion notification", zap.Error(err))
	}

	logger.Info("Account deleted successfully", zap.String("accountID", accountID))
	return nil
}

// GetAccount retrieves an account by its ID
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	// Try to get from cache first
	cachedAccount, err := s.cacheService.GetAccount(ctx, accountID)
	if err == nil && cachedAccount != nil {
		return cachedAccount, nil
	}

	account, err := s.accountDAO.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, lm_errors.ErrAccountNotFound) {
			return nil, lm_errors.ErrAccountNotFound
		}
		logger.Error("Error retrieving account", zap.Error(err), zap.String("accountID", accountID))
		return nil, lm_errors.ErrInternalServer
	}

	// Update cache
	if err := s.cacheService.SetAccount(ctx, *account); err != nil {
		logger.Warn("Failed to cache account", zap.Error(err), zap.String("accountID", accountID))
	}

	return account, nil
}

// ListAccounts retrieves the configured accounts in auth-index order
func (s *AccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]model.Account, error) {
	if offset == 0 {
		if cached, err := s.cacheService.GetAccountList(ctx); err == nil && len(cached) > 0 && len(cached) <= limit {
			return cached, nil
		}
	}

	accounts, err := s.accountDAO.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing accounts", zap.Error(err))
		return nil, err
	}

	if offset == 0 {
		if err := s.cacheService.SetAccountList(ctx, accounts); err != nil {
			logger.Warn("Failed to cache account list", zap.Error(err))
		}
	}

	return accounts, nil
}

// EnsureDefaultAccounts seeds the store with the default Work/Personal pair
// when no accounts are configured yet.
func (s *AccountService) EnsureDefaultAccounts(ctx context.Context) error {
	accounts, err := s.accountDAO.ListAccounts(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(accounts) > 0 {
		return nil
	}

	logger.Info("No accounts configured, seeding defaults")
	for _, account := range model.DefaultAccounts() {
		if _, err := s.CreateAccount(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
