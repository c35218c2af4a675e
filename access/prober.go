// access/prober.go

package access

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dev-Muhammad-Junaid/links-maker/audit"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

// Prober answers "which of these accounts can open this URL". It consults
// the verdict cache, probes misses concurrently and writes fresh verdicts
// back. It never fails as a whole: every account resolves to a result, worst
// case unknown with a reason code.
type Prober struct {
	cache      *Cache
	fetcher    Fetcher
	classifier *Classifier
	auditSvc   audit.Service
}

func NewProber(cache *Cache, fetcher Fetcher, classifier *Classifier, auditSvc audit.Service) *Prober {
	return &Prober{
		cache:      cache,
		fetcher:    fetcher,
		classifier: classifier,
		auditSvc:   auditSvc,
	}
}

// CheckAccess probes rawURL for every account. The bool reports whether all
// verdicts came from the cache. force treats every account as a miss and
// drops existing entries for the resource first. An unsupported resource
// (no extractable identity) is probed uncached.
func (p *Prober) CheckAccess(ctx context.Context, rawURL string, accounts []model.Account, force bool) (map[int]model.AccessResult, bool) {
	resourceID, supported := util.ExtractResourceID(rawURL)
	if !supported {
		logger.Warn("Resource identity unavailable, probing uncached", zap.String("url", rawURL))
	}
	if force && supported {
		p.cache.InvalidateResource(resourceID)
	}

	results := make(map[int]model.AccessResult, len(accounts))
	var toProbe []model.Account

	for _, account := range accounts {
		if !supported || force {
			toProbe = append(toProbe, account)
			continue
		}
		if cached := p.cache.Get(resourceID, account.CacheKey()); cached != nil {
			results[account.AuthIndex] = *cached
			continue
		}
		toProbe = append(toProbe, account)
	}

	if len(toProbe) > 0 {
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, account := range toProbe {
			account := account
			g.Go(func() error {
				result := p.probeOne(gctx, rawURL, resourceID, account)
				mu.Lock()
				results[account.AuthIndex] = result
				mu.Unlock()
				if supported {
					p.cache.Set(resourceID, account.CacheKey(), result)
				}
				return nil
			})
		}
		g.Wait()
	}

	return results, len(toProbe) == 0
}

// probeOne rewrites, fetches and classifies for a single account. Failures
// become unknown verdicts with a reason code, never errors.
func (p *Prober) probeOne(ctx context.Context, rawURL, resourceID string, account model.Account) model.AccessResult {
	targetURL, ok := util.RewriteForAccount(rawURL, account.AuthIndex)
	if !ok {
		logger.Warn("Access probe skipped, unrewritable url",
			zap.Int("authIndex", account.AuthIndex),
			zap.String("url", rawURL))
		return model.AccessResult{Status: model.StatusUnknown, Reason: model.ReasonBadURL}
	}

	logger.Info("Access probe built",
		zap.Int("authIndex", account.AuthIndex),
		zap.String("method", "GET"),
		zap.String("url", targetURL))

	resp, err := p.fetcher.Probe(ctx, targetURL)
	if err != nil {
		reason := model.ReasonFetchError
		if errors.Is(err, ErrProbeExec) {
			reason = model.ReasonExecError
		}
		logger.Error("Access probe failed",
			zap.Int("authIndex", account.AuthIndex),
			zap.String("reason", reason),
			zap.Error(err))
		return model.AccessResult{Status: model.StatusUnknown, Reason: reason}
	}

	classification := p.classifier.Classify(*resp)
	result := model.AccessResult{
		Status:   classification.Status,
		Code:     resp.Status,
		FinalURL: resp.FinalURL,
		Rule:     classification.Rule,
	}

	logger.Info("Access probe response",
		zap.Int("authIndex", account.AuthIndex),
		zap.Int("statusCode", resp.Status),
		zap.String("finalUrl", resp.FinalURL),
		zap.String("rule", classification.Rule),
		zap.String("classified", string(classification.Status)))

	p.recordProbe(ctx, rawURL, resourceID, account, result)
	return result
}

// recordProbe appends to the probe trail. Best effort: the verdict stands
// even when the trail write fails.
func (p *Prober) recordProbe(ctx context.Context, rawURL, resourceID string, account model.Account, result model.AccessResult) {
	if p.auditSvc == nil {
		return
	}
	entry := audit.ProbeLog{
		Timestamp:  time.Now(),
		AccountKey: account.CacheKey(),
		AuthIndex:  account.AuthIndex,
		ResourceID: resourceID,
		URL:        rawURL,
		Status:     string(result.Status),
		Rule:       result.Rule,
		Code:       result.Code,
		FinalURL:   result.FinalURL,
	}
	if err := p.auditSvc.LogProbe(ctx, entry); err != nil {
		logger.Warn("Failed to record probe log", zap.Error(err))
	}
}
