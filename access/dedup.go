// access/dedup.go

package access

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// Round is the outcome of one probe round: per-index verdicts plus whether
// everything was served from the cache.
type Round struct {
	Results map[int]model.AccessResult
	Cached  bool
}

// Deduplicator coalesces concurrent probe rounds per (url, context) key.
// A completed round lingers for a short window so near-simultaneous UI
// triggers still share it instead of racing a fresh round. Forced refreshes
// bypass coalescing entirely.
type Deduplicator struct {
	prober *Prober
	group  singleflight.Group
	linger time.Duration

	mu     sync.Mutex
	recent map[string]recentRound
	now    func() time.Time
}

type recentRound struct {
	round   Round
	expires time.Time
}

func NewDeduplicator(prober *Prober, linger time.Duration) *Deduplicator {
	return &Deduplicator{
		prober: prober,
		linger: linger,
		recent: make(map[string]recentRound),
		now:    time.Now,
	}
}

// CheckAccess runs one probe round per key; concurrent callers with the same
// key await the first caller's round and receive its result.
func (d *Deduplicator) CheckAccess(ctx context.Context, rawURL, reqContext string, accounts []model.Account, force bool) Round {
	if force {
		results, cached := d.prober.CheckAccess(ctx, rawURL, accounts, true)
		return Round{Results: results, Cached: cached}
	}

	key := rawURL + "|" + reqContext

	if round, ok := d.recentRound(key); ok {
		logger.Debug("Probe round coalesced with recent result", zap.String("key", key))
		return round
	}

	v, _, shared := d.group.Do(key, func() (interface{}, error) {
		results, cached := d.prober.CheckAccess(ctx, rawURL, accounts, false)
		round := Round{Results: results, Cached: cached}
		d.remember(key, round)
		return round, nil
	})
	if shared {
		logger.Debug("Probe round coalesced with in-flight round", zap.String("key", key))
	}
	return v.(Round)
}

func (d *Deduplicator) recentRound(key string) (Round, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.recent[key]
	if !ok || !r.expires.After(d.now()) {
		delete(d.recent, key)
		return Round{}, false
	}
	return r.round, true
}

// remember keeps the finished round visible for the linger window, then
// forgets it.
func (d *Deduplicator) remember(key string, round Round) {
	d.mu.Lock()
	d.recent[key] = recentRound{round: round, expires: d.now().Add(d.linger)}
	d.mu.Unlock()

	time.AfterFunc(d.linger, func() {
		d.mu.Lock()
		if r, ok := d.recent[key]; ok && !r.expires.After(d.now()) {
			delete(d.recent, key)
		}
		d.mu.Unlock()
	})
}
