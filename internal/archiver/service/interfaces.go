// Package service contains the archiver's processing services: writing
// consumed transfer events into the archive read model, optionally through a
// worker pool.
package service

import (
	"context"

	"github.com/points-ledger/internal/domain/archive"
)

// ArchivingService defines the interface for archiving transfer events
type ArchivingService interface {
	ArchiveEntry(ctx context.Context, entry *archive.Entry) error
}
