package services

import (
	"context"
	"fmt"
	"time"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/roster"
	"rostersync/internal/roster/interfaces"
	"rostersync/internal/structures"
)

type RosterServiceInterface interface {
	roster.Refresher

	Add(s models.Streamer) bool
	Remove(uuid string) bool
	ToggleActive(uuid string) bool
	Get(uuid string) (models.Streamer, bool)
	ActiveUuids() []string
	Uuids() []string
	Streamers() []models.Streamer
	Len() int
	ActiveLen() int
	ReconcileOnLogin(ctx context.Context) error
}

// RosterService wraps the roster store with its side effects: every
// mutation persists a fresh snapshot synchronously, and active-toggle flips
// on followed streamers are handed to the batch queue for deferred
// propagation. Toggles on unfollowed streamers stay purely local.
type RosterService struct {
	conf        *structures.Config
	store       *models.RosterStore
	queue       interfaces.QueueInterface
	fileManager *roster.FileManager
	client      gateway.ClientInterface
	follows     FollowServiceInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewRosterService(conf *structures.Config, store *models.RosterStore, queue interfaces.QueueInterface, fileManager *roster.FileManager, client gateway.ClientInterface, follows FollowServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) RosterServiceInterface {
	return &RosterService{
		conf:        conf,
		store:       store,
		queue:       queue,
		fileManager: fileManager,
		client:      client,
		follows:     follows,
		logger:      logger,
		metrics:     metrics,
	}
}

func (rs *RosterService) Add(s models.Streamer) bool {
	if !rs.store.Add(s) {
		return false
	}
	rs.logger.Infof(providers.TypeSync, "Added streamer %s to roster", s.Uuid)
	rs.persist()
	return true
}

func (rs *RosterService) Remove(uuid string) bool {
	if !rs.store.Remove(uuid) {
		return false
	}
	rs.logger.Infof(providers.TypeSync, "Removed streamer %s from roster", uuid)
	rs.persist()
	return true
}

func (rs *RosterService) ToggleActive(uuid string) bool {
	updated, ok := rs.store.ToggleActive(uuid)
	if !ok {
		return false
	}

	// Only server-known follow relations need propagation.
	if updated.IsFollowed {
		rs.queue.Enqueue(uuid, updated.IsActive)
	}

	rs.logger.Debugf(providers.TypeSync, "Toggled streamer %s active=%t followed=%t", uuid, updated.IsActive, updated.IsFollowed)
	rs.persist()
	return true
}

func (rs *RosterService) Get(uuid string) (models.Streamer, bool) {
	return rs.store.Get(uuid)
}

func (rs *RosterService) ActiveUuids() []string {
	return rs.store.ActiveUuids()
}

func (rs *RosterService) Uuids() []string {
	return rs.store.Uuids()
}

func (rs *RosterService) Streamers() []models.Streamer {
	return rs.store.All()
}

func (rs *RosterService) Len() int {
	return rs.store.Len()
}

func (rs *RosterService) ActiveLen() int {
	return rs.store.ActiveLen()
}

// ReconcileOnLogin fetches the server's follow list and merges it into the
// local roster. Pre-login additions survive, server associations appear, and
// known streamers keep their local active preference.
func (rs *RosterService) ReconcileOnLogin(ctx context.Context) error {
	serverStreamers, err := rs.client.FetchFollowedStreamers(ctx)
	if err != nil {
		return fmt.Errorf("fetch followed streamers: %w", err)
	}

	rs.store.ReconcileOnLogin(serverStreamers)
	rs.cacheBaselines(serverStreamers)
	rs.logger.Infof(providers.TypeSync, "Login reconciliation merged %d server streamers, roster size %d", len(serverStreamers), rs.store.Len())
	rs.persist()
	return nil
}

// RefreshFromRemote re-fetches metadata for every roster entry and folds it
// in, preserving local active preferences. Entries the server no longer
// knows are left untouched.
func (rs *RosterService) RefreshFromRemote(ctx context.Context) error {
	uuids := rs.store.Uuids()
	if len(uuids) == 0 {
		return nil
	}

	updated, err := rs.client.FetchStreamersBatch(ctx, uuids)
	if err != nil {
		return fmt.Errorf("fetch streamers batch: %w", err)
	}

	rs.store.RefreshFromServer(updated)
	rs.cacheBaselines(updated)
	rs.persist()
	return nil
}

func (rs *RosterService) cacheBaselines(streamers []models.Streamer) {
	for _, s := range streamers {
		rs.follows.CacheBaseline(s.Uuid, s.IsFollowed, s.FollowCount)
	}
}

func (rs *RosterService) persist() {
	start := time.Now()
	if err := rs.fileManager.SaveToFile(rs.conf.Persistence.FilePath); err != nil {
		rs.logger.Errorf(providers.TypeApp, "Error while persisting roster: %s", err)
	} else {
		rs.metrics.ObservePersistenceDuration(time.Since(start))
	}
	rs.metrics.SetRosterSize(rs.store.Len(), rs.store.ActiveLen())
}
