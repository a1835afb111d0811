package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/db/dbtest"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/repository"
)

func TestMessagePagination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMessageRepository(dbtest.Open(t))

	matchID, other := uuid.NewString(), uuid.NewString()
	sender := uuid.NewString()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// two messages share a timestamp to exercise the id tiebreak
	offsets := []time.Duration{0, time.Second, time.Second, 2 * time.Second, 3 * time.Second}
	for i, off := range offsets {
		require.NoError(t, repo.Append(ctx, &db.Message{
			MatchID:  matchID,
			SenderID: sender,
			Content:  fmt.Sprintf("msg-%d", i),
			SentAt:   base.Add(off),
		}))
	}
	require.NoError(t, repo.Append(ctx, &db.Message{
		MatchID: other, SenderID: sender, Content: "elsewhere", SentAt: base,
	}))

	var seen []db.Message
	var token *string
	pages := 0
	for {
		page, next, err := repo.ListByMatch(ctx, matchID, token, 2)
		require.NoError(t, err)
		seen = append(seen, page...)
		pages++
		if next == nil {
			break
		}
		token = next
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, len(offsets))
	for i := 1; i < len(seen); i++ {
		prev, cur := seen[i-1], seen[i]
		assert.False(t, cur.SentAt.Before(prev.SentAt), "messages out of order at %d", i)
		if cur.SentAt.Equal(prev.SentAt) {
			assert.Less(t, prev.ID, cur.ID)
		}
		assert.Equal(t, matchID, cur.MatchID)
	}
}

func TestMessageListRejectsBadToken(t *testing.T) {
	repo := repository.NewMessageRepository(dbtest.Open(t))

	bad := "%%%not-base64"
	_, _, err := repo.ListByMatch(context.Background(), uuid.NewString(), &bad, 10)
	require.Error(t, err)
	assert.True(t, svcErr.IsKind(err, svcErr.KindInvalidArgument))
}

func TestMessageListRejectsNonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMessageRepository(dbtest.Open(t))

	matchID := uuid.NewString()
	require.NoError(t, repo.Append(ctx, &db.Message{
		MatchID: matchID, SenderID: uuid.NewString(), Content: "hi", SentAt: time.Now().UTC(),
	}))

	for _, limit := range []int{0, -1} {
		page, next, err := repo.ListByMatch(ctx, matchID, nil, limit)
		assert.True(t, svcErr.IsKind(err, svcErr.KindInvalidArgument), "limit %d: got %v", limit, err)
		assert.Nil(t, page)
		assert.Nil(t, next)
	}

	page, next, err := repo.ListByMatch(ctx, matchID, nil, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Nil(t, next)
}
