package app

import (
	"context"
	"sync"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/system"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
)

// healthCheckTimeout bounds each dependency probe
const healthCheckTimeout = 5 * time.Second

// healthService implements the HealthService interface
type healthService struct {
	database system.Pinger
	storage  system.Pinger
	logger   logger.Logger
	now      func() time.Time
}

// NewHealthService creates a new instance of HealthService
func NewHealthService(database, storage system.Pinger, logger logger.Logger) (system.HealthService, error) {
	return &healthService{
		database: database,
		storage:  storage,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *healthService) Check(ctx context.Context) *system.HealthReport {
	report := &system.HealthReport{Timestamp: s.now().UTC()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Database = s.probe(ctx, "database", s.database)
	}()
	go func() {
		defer wg.Done()
		report.Storage = s.probe(ctx, "storage", s.storage)
	}()
	wg.Wait()

	report.Status = system.StatusDegraded
	if report.Healthy() {
		report.Status = system.StatusHealthy
	}
	return report
}

func (s *healthService) probe(ctx context.Context, name string, pinger system.Pinger) string {
	if pinger == nil {
		return "error: not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		s.logger.Warn("Health check of ", name, " failed: ", err)
		return "error: " + err.Error()
	}
	return system.StatusConnected
}
