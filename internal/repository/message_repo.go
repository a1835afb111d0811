package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/db"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/utils/pagination"
)

// MessageRepository stores chat messages scoped to a match.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Append persists a message. SentAt must already be set by the caller.
func (r *MessageRepository) Append(ctx context.Context, msg *db.Message) error {
	return storageErr("append message", r.db.WithContext(ctx).Create(msg).Error)
}

// ListByMatch returns messages of a match in ascending (sent_at, id) order.
//
// Behavior:
//   - Fetches limit+1 rows to know whether another page exists.
//   - The returned token encodes the last row's sent_at (ms) and id.
//   - An undecodable token or a limit below 1 is an InvalidArgument error.
func (r *MessageRepository) ListByMatch(
	ctx context.Context,
	matchID string,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	if limit < 1 {
		return nil, nil, svcErr.InvalidArgument("limit must be positive")
	}
	cursor, err := pagination.Decode(pagination.Deref(paginationToken))
	if err != nil {
		return nil, nil, svcErr.InvalidArgument(err.Error())
	}

	query := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("sent_at ASC, id ASC").
		Limit(limit + 1)

	if !cursor.IsZero() {
		ts := time.UnixMilli(cursor.Unix).UTC()
		query = query.Where(
			"(sent_at > ? OR (sent_at = ? AND id > ?))",
			ts, ts, cursor.ID,
		)
	}

	var messages []db.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, nil, storageErr("list messages", err)
	}

	var nextToken *string
	if len(messages) > limit {
		last := messages[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:   last.ID,
			Unix: last.SentAt.UnixMilli(),
		})
		nextToken = &token
		messages = messages[:limit]
	}

	return messages, nextToken, nil
}
