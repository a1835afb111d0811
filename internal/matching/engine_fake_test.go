package matching_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/logger"
	"github.com/oggyb/match-service/internal/matching"
)

func TestConflictOnCreateIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	profiles := &memProfiles{}
	a := profiles.add(db.GenderMan, db.PreferenceWoman)
	b := profiles.add(db.GenderWoman, db.PreferenceMan)

	likes, matches := newMemLikes(), newMemMatches()
	stores := matching.Stores{Likes: likes, Matches: matches, Profiles: profiles}
	engine := matching.NewEngine(stores, noLock{}, nil, logger.Discard())

	_, err := engine.RecordLike(ctx, a, b)
	require.NoError(t, err)

	// another writer wins the race between the reciprocal check and Create
	var winner string
	matches.beforeCreate = func(x, y string) {
		m, err := matches.Create(ctx, x, y)
		require.NoError(t, err)
		winner = m.ID
	}

	res, err := engine.RecordLike(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, winner, res.MatchID)
	assert.Equal(t, 1, matches.len())
	assert.Zero(t, likes.len())
}

func TestRacingLikesWithFakes(t *testing.T) {
	ctx := context.Background()
	profiles := &memProfiles{}
	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, profiles.add(db.GenderMan, db.PreferenceBoth))
	}

	likes, matches := newMemLikes(), newMemMatches()
	stores := matching.Stores{Likes: likes, Matches: matches, Profiles: profiles}
	engine := matching.NewEngine(stores, &muLock{}, nil, logger.Discard())

	// every ordered pair likes concurrently, several times
	var wg sync.WaitGroup
	for _, x := range ids {
		for _, y := range ids {
			if x == y {
				continue
			}
			for k := 0; k < 3; k++ {
				wg.Add(1)
				go func(x, y string) {
					defer wg.Done()
					_, err := engine.RecordLike(ctx, x, y)
					assert.NoError(t, err)
				}(x, y)
			}
		}
	}
	wg.Wait()

	n := len(ids)
	assert.Equal(t, n*(n-1)/2, matches.len())
	assert.Zero(t, likes.len())
}
