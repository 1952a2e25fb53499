package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/points-ledger/internal/domain/archive"
)

const (
	// ArchiveCollectionName is the name of the transfer archive collection in MongoDB
	ArchiveCollectionName = "transfer_archive"
)

// ArchiveRepository implements the archive.Repository interface for MongoDB
type ArchiveRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewArchiveRepository creates a new MongoDB archive repository
func NewArchiveRepository(logger *slog.Logger, db *mongo.Database) archive.Repository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new archive entry, stamping its archival time. Returns
// ErrDuplicateEntry if the transfer has already been archived, which lets
// redelivered events commit without a second write.
func (r *ArchiveRepository) Create(ctx context.Context, entry *archive.Entry) error {
	collection := r.db.Collection(ArchiveCollectionName)

	existing, err := r.GetByTransferID(ctx, entry.TransferID)
	if err != nil && !errors.Is(err, archive.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing archive entry",
			"transfer_id", entry.TransferID,
			"error", err)
		return fmt.Errorf("failed to check for existing archive entry: %w", err)
	}

	if existing != nil {
		return archive.ErrDuplicateEntry{TransferID: entry.TransferID}
	}

	now := time.Now()
	entry.ArchivedAt = &now

	_, err = collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create archive entry",
			"transfer_id", entry.TransferID,
			"error", err)
		return fmt.Errorf("failed to create archive entry: %w", err)
	}

	return nil
}

// GetByTransferID retrieves an archive entry by its transfer ID.
// Returns ErrEntryNotFound if the transfer has not been archived yet.
func (r *ArchiveRepository) GetByTransferID(ctx context.Context, transferID int64) (*archive.Entry, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"transfer_id": transferID}
	var entry archive.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, archive.ErrEntryNotFound{TransferID: transferID}
		}
		r.logger.Error("Failed to get archive entry",
			"transfer_id", transferID,
			"error", err)
		return nil, fmt.Errorf("failed to get archive entry: %w", err)
	}

	return &entry, nil
}

// GetByAccountID retrieves paginated archive entries where the account is the
// sender or the recipient, newest first.
func (r *ArchiveRepository) GetByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*archive.Entry, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := accountFilter(accountID)
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get archive entries",
			"account_id", accountID,
			"error", err)
		return nil, fmt.Errorf("failed to get archive entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*archive.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode archive entries",
			"account_id", accountID,
			"error", err)
		return nil, fmt.Errorf("failed to decode archive entries: %w", err)
	}

	return entries, nil
}

// CountByAccountID counts the archive entries involving an account
func (r *ArchiveRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	count, err := collection.CountDocuments(ctx, accountFilter(accountID))
	if err != nil {
		r.logger.Error("Failed to count archive entries",
			"account_id", accountID,
			"error", err)
		return 0, fmt.Errorf("failed to count archive entries: %w", err)
	}

	return count, nil
}

// accountFilter matches entries where the account is sender or recipient
func accountFilter(accountID int64) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"sender_id": accountID},
			{"recipient_id": accountID},
		},
	}
}
