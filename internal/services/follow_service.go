package services

import (
	"context"
	"time"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
)

type FollowServiceInterface interface {
	Toggle(uuid string, originalFollowed bool, originalCount int) (bool, int)
	FollowState(uuid string, originalFollowed bool, originalCount int) (followed bool, count int, overridden bool)
	ReconcileToServer(ctx context.Context, uuid string, originalFollowed bool) bool
	CacheBaseline(uuid string, followed bool, count int)
	Baseline(uuid string) (models.Baseline, bool)
	OverlayLen() int
}

// FollowService runs the optimistic follow pipeline: Toggle mutates the
// overlay synchronously so reads flip instantly, and ReconcileToServer
// settles the session with the server exactly once when the detail view
// closes. The overlay always compares against the baseline captured at
// session start, so an on-then-off round trip produces zero network calls.
//
// Server-supplied baselines pass through a freecache-backed cache keyed by
// streamer uuid, giving reads something to fall back on between refreshes.
type FollowService struct {
	overlay  *models.OverlayStore
	client   gateway.ClientInterface
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier providers.NotifierInterface
}

func NewFollowService(overlay *models.OverlayStore, client gateway.ClientInterface, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, notifier providers.NotifierInterface) FollowServiceInterface {
	return &FollowService{
		overlay:  overlay,
		client:   client,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Toggle flips the effective follow state against the session-start values
// and returns the new (flag, count) pair for immediate display.
func (fs *FollowService) Toggle(uuid string, originalFollowed bool, originalCount int) (bool, int) {
	return fs.overlay.Toggle(uuid, originalFollowed, originalCount)
}

// FollowState resolves the effective (flag, count) pair: the overlay wins
// while an override exists, otherwise the caller's baseline is returned.
func (fs *FollowService) FollowState(uuid string, originalFollowed bool, originalCount int) (bool, int, bool) {
	_, overridden := fs.overlay.Override(uuid)
	flag, count := fs.overlay.Resolve(uuid, originalFollowed, originalCount)
	return flag, count, overridden
}

// ReconcileToServer settles one interaction session. No override: nothing to
// do. Override equal to the session baseline: the user toggled back, clear
// without any network call. Otherwise exactly one follow or unfollow call
// goes out; the override is cleared either way, so a failure abandons the
// optimistic value and the next read falls back to the stale baseline.
func (fs *FollowService) ReconcileToServer(ctx context.Context, uuid string, originalFollowed bool) bool {
	entry, ok := fs.overlay.Override(uuid)
	if !ok {
		return true
	}

	if entry.Flag == originalFollowed {
		fs.overlay.ClearOverride(uuid)
		fs.metrics.IncOverlayReconciles("noop")
		return true
	}

	var err error
	if entry.Flag {
		err = fs.client.Follow(ctx, uuid)
	} else {
		err = fs.client.Unfollow(ctx, uuid)
	}

	fs.overlay.ClearOverride(uuid)

	if err != nil {
		fs.logger.Errorf(providers.TypeSync, "Follow reconciliation for %s failed: %s", uuid, err)
		fs.notifier.Notify(providers.NotifyError, "Failed to update follow state")
		fs.metrics.IncOverlayReconciles("failure")
		return false
	}

	fs.logger.Infof(providers.TypeSync, "Reconciled follow state for %s: followed=%t", uuid, entry.Flag)
	fs.metrics.IncOverlayReconciles("success")
	return true
}

// CacheBaseline stores the latest server-supplied (followed, count) pair.
func (fs *FollowService) CacheBaseline(uuid string, followed bool, count int) {
	fs.cache.Set(baselineKey(uuid), models.EncodeBaseline(models.Baseline{
		Followed:  followed,
		Count:     count,
		FetchedAt: time.Now(),
	}))
}

// Baseline returns the cached server baseline for a streamer, if any.
func (fs *FollowService) Baseline(uuid string) (models.Baseline, bool) {
	data, ok := fs.cache.Get(baselineKey(uuid))
	if !ok {
		return models.Baseline{}, false
	}

	baseline, err := models.DecodeBaseline(data)
	if err != nil {
		fs.logger.Warnf(providers.TypeSync, "Dropping corrupt baseline for %s: %s", uuid, err)
		fs.cache.Del(baselineKey(uuid))
		return models.Baseline{}, false
	}
	return baseline, true
}

func (fs *FollowService) OverlayLen() int {
	return fs.overlay.Len()
}

func baselineKey(uuid string) string {
	return "baseline:" + uuid
}
