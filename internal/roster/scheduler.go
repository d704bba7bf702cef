package roster

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"rostersync/internal/providers"
	"rostersync/internal/roster/interfaces"
	"rostersync/internal/structures"
)

// Refresher re-fetches roster metadata from the remote authority. Implemented
// by the roster service; declared here so the scheduler does not depend on
// the services package.
type Refresher interface {
	RefreshFromRemote(ctx context.Context) error
}

// Scheduler owns the periodic jobs: safety-net snapshot persistence (every
// mutation already persists synchronously) and roster metadata refresh.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	refresher   Refresher
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	saveInterval := s.config.Persistence.SaveInterval
	refreshInterval := s.config.Sync.RefreshInterval

	s.cron.AddFunc(gron.Every(saveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting roster: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted roster to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(refreshInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Api.Timeout)
		defer cancel()

		s.logger.Infof(providers.TypeSync, "Refreshing roster metadata...")
		if err := s.refresher.RefreshFromRemote(ctx); err != nil {
			s.logger.Warnf(providers.TypeSync, "Roster metadata refresh failed: %s", err)
			return
		}
		s.logger.Infof(providers.TypeSync, "Roster metadata refreshed")
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting roster to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting roster: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, refresher Refresher, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		refresher:   refresher,
		fileManager: fileManager,
	}
}
