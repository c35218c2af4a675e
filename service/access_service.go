// service/access_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dev-Muhammad-Junaid/links-maker/access"
	"github.com/Dev-Muhammad-Junaid/links-maker/audit"
	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

const accountListLimit = 100

type IAccessService interface {
	CheckAccess(ctx context.Context, req model.CheckAccessRequest, reqContext string) (*model.CheckAccessResponse, error)
	RewriteURL(rawURL string, authIndex int) (string, error)
	BadgeIndex(rawURL string) (int, bool)
	Invalidate(ctx context.Context, req model.InvalidateRequest) error
	ClearCache(ctx context.Context) error
	QueryProbeLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]audit.ProbeLog, error)
}

// AccessService drives probe rounds for UI surfaces: it answers whether each
// configured account can open a URL, serves rewrite requests for navigation,
// and owns verdict-cache invalidation.
type AccessService struct {
	dedup           *access.Deduplicator
	cache           *access.Cache
	accountService  IAccountService
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	auditSvc        audit.Service
	eventBus        *util.EventBus
}

func NewAccessService(
	dedup *access.Deduplicator,
	cache *access.Cache,
	accountService IAccountService,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	auditSvc audit.Service,
	eventBus *util.EventBus,
) *AccessService {
	service := &AccessService{
		dedup:           dedup,
		cache:           cache,
		accountService:  accountService,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventBus:        eventBus,
	}

	// Account changes can remap auth indices; index-keyed verdicts would then
	// answer for the wrong identity.
	eventBus.Subscribe("account.updated", service.handleAccountUpdated)
	eventBus.Subscribe("account.deleted", service.handleAccountDeleted)

	return service
}

func (s *AccessService) handleAccountUpdated(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	oldAccount, okOld := payload["old"].(model.Account)
	newAccount, okNew := payload["new"].(model.Account)
	if !okOld || !okNew {
		return fmt.Errorf("account.updated payload missing accounts")
	}

	if oldAccount.AuthIndex != newAccount.AuthIndex {
		s.cache.InvalidateAccountIndex(oldAccount.AuthIndex)
	}
	if oldAccount.CacheKey() != newAccount.CacheKey() {
		s.cache.InvalidateAccountIndex(newAccount.AuthIndex)
	}
	return nil
}

func (s *AccessService) handleAccountDeleted(ctx context.Context, event util.Event) error {
	account, ok := event.Payload.(model.Account)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	s.cache.InvalidateAccountIndex(account.AuthIndex)
	return nil
}

// CheckAccess resolves a per-account verdict map for a URL. Unsupported
// resource types short-circuit with supported=false and zero probes.
func (s *AccessService) CheckAccess(ctx context.Context, req model.CheckAccessRequest, reqContext string) (*model.CheckAccessResponse, error) {
	if err := s.validationUtil.ValidateCheckAccessRequest(req); err != nil {
		return nil, lm_errors.ErrInvalidCheckRequest
	}

	logger.Info("Access check begin",
		zap.String("url", req.URL),
		zap.String("context", reqContext),
		zap.Bool("force", req.ForceRefresh))

	_, identified := util.ExtractResourceID(req.URL)
	if !identified && !util.IsMeetURL(req.URL) {
		logger.Warn("Access check unsupported", zap.String("url", req.URL))
		return &model.CheckAccessResponse{
			OK:        true,
			Supported: false,
			Results:   map[int]model.AccessResult{},
		}, nil
	}

	accounts, err := s.accountService.ListAccounts(ctx, accountListLimit, 0)
	if err != nil {
		logger.Error("Access check failed to load accounts", zap.Error(err))
		return nil, err
	}

	round := s.dedup.CheckAccess(ctx, req.URL, reqContext, accounts, req.ForceRefresh)

	logger.Info("Access check end",
		zap.String("url", req.URL),
		zap.Int("accounts", len(accounts)),
		zap.Bool("cached", round.Cached))

	return &model.CheckAccessResponse{
		OK:        true,
		Supported: true,
		Cached:    round.Cached,
		Results:   round.Results,
	}, nil
}

// RewriteURL addresses a URL to the given account for navigation surfaces.
func (s *AccessService) RewriteURL(rawURL string, authIndex int) (string, error) {
	rewritten, ok := util.RewriteForAccount(rawURL, authIndex)
	if !ok {
		logger.Warn("URL rewrite failed",
			zap.String("url", rawURL),
			zap.Int("authIndex", authIndex))
		return "", lm_errors.ErrUnrewritableURL
	}
	return rewritten, nil
}

// BadgeIndex reports which account index a URL is currently addressed to.
func (s *AccessService) BadgeIndex(rawURL string) (int, bool) {
	return util.ParseAuthIndex(rawURL)
}

// Invalidate drops cached verdicts: an exact pair, a whole resource, a raw
// auth-index key, or (with an empty request) everything.
func (s *AccessService) Invalidate(ctx context.Context, req model.InvalidateRequest) error {
	switch {
	case req.ResourceID != "" && req.AccountKey != "":
		s.cache.InvalidatePair(req.ResourceID, req.AccountKey)
	case req.ResourceID != "":
		s.cache.InvalidateResource(req.ResourceID)
	case req.AuthIndex != nil:
		s.cache.InvalidateAccountIndex(*req.AuthIndex)
	case req.AccountKey != "":
		return lm_errors.ErrInvalidCheckRequest
	default:
		return s.ClearCache(ctx)
	}
	return nil
}

// ClearCache empties the verdict cache and flushes the empty snapshot so a
// restart cannot resurrect stale verdicts.
func (s *AccessService) ClearCache(ctx context.Context) error {
	s.cache.Clear()
	s.cache.FlushNow(ctx)
	if err := s.notificationSvc.NotifyCacheCleared(ctx, "all"); err != nil {
		logger.Warn("Failed to send cache clear notification", zap.Error(err))
	}
	s.eventBus.Publish(ctx, "cache.cleared", "all")
	return nil
}

// QueryProbeLogs exposes the probe trail to the logs surface.
func (s *AccessService) QueryProbeLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]audit.ProbeLog, error) {
	return s.auditSvc.QueryLogs(ctx, from, to, accountKey, resourceID)
}
