package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/points-ledger/internal/domain/archive"
)

// WorkerPoolArchivingService spreads archive writes across a bounded worker
// pool while keeping the per-message result synchronous for offset commits.
type WorkerPoolArchivingService struct {
	baseService ArchivingService
	pool        *ants.Pool
	logger      *slog.Logger
	mu          sync.Mutex
	results     map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolArchivingService(
	baseService ArchivingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolArchivingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolArchivingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ArchiveEntry submits an archive write to the worker pool and waits for its result
func (s *WorkerPoolArchivingService) ArchiveEntry(ctx context.Context, entry *archive.Entry) error {
	logger := s.logger
	if entry.CorrelationID != "" {
		logger = s.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Debug("Submitting transfer event to worker pool",
		"transfer_id", entry.TransferID,
	)

	resultChan := make(chan error, 1)

	transferKey := strconv.FormatInt(entry.TransferID, 10)
	s.mu.Lock()
	s.results[transferKey] = resultChan
	s.mu.Unlock()

	entryCopy := *entry

	err := s.pool.Submit(func() {
		err := s.baseService.ArchiveEntry(ctx, &entryCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, transferKey)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, transferKey)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit transfer event to worker pool",
			"transfer_id", entry.TransferID,
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool
func (s *WorkerPoolArchivingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool
func (s *WorkerPoolArchivingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool
func (s *WorkerPoolArchivingService) Capacity() int {
	return s.pool.Cap()
}
