package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

// LikeResult is the outcome of RecordLike.
type LikeResult struct {
	Matched bool
	MatchID string
}

// Engine turns likes into matches.
type Engine struct {
	stores Stores
	locker PairLocker
	counts LikeCountCache
	log    *slog.Logger
}

// NewEngine builds an Engine. counts may be nil when no counter cache is used.
func NewEngine(stores Stores, locker PairLocker, counts LikeCountCache, log *slog.Logger) *Engine {
	return &Engine{stores: stores, locker: locker, counts: counts, log: log}
}

// RecordLike registers that likerID likes likedID.
//
// Behavior:
//   - Both ids must be well-formed and different (InvalidArgument).
//   - likedID must exist (NotFound).
//   - Runs under the pair lock, so concurrent likes on the same pair are serialised.
//   - If likedID already likes likerID a match is created and the reciprocal edge
//     is removed. The forward edge is never written on this path.
//   - Otherwise the forward edge is inserted once; repeating the call is a no-op.
//   - An existing match for the pair is returned as-is.
func (e *Engine) RecordLike(ctx context.Context, likerID, likedID string) (LikeResult, error) {
	if err := validateID("liker_id", likerID); err != nil {
		return LikeResult{}, err
	}
	if err := validateID("liked_id", likedID); err != nil {
		return LikeResult{}, err
	}
	if likerID == likedID {
		return LikeResult{}, svcErr.InvalidArgument("cannot like yourself")
	}

	if _, err := e.stores.Profiles.GetByID(ctx, likedID); err != nil {
		return LikeResult{}, err
	}

	unlock, err := e.locker.LockPair(ctx, likerID, likedID)
	if err != nil {
		e.log.Error("pair lock failed", "liker", likerID, "liked", likedID, "err", err)
		return LikeResult{}, err
	}
	defer unlock()

	existing, err := e.stores.Matches.FindByPair(ctx, likerID, likedID)
	switch {
	case err == nil:
		// leftover reciprocal edge from an interrupted formation
		if err := e.stores.Likes.Delete(ctx, likedID, likerID); err != nil {
			return LikeResult{}, err
		}
		e.invalidate(ctx, likerID)
		return LikeResult{Matched: true, MatchID: existing.ID}, nil
	case !svcErr.IsKind(err, svcErr.KindNotFound):
		return LikeResult{}, err
	}

	alreadyLiked, err := e.stores.Likes.Exists(ctx, likerID, likedID)
	if err != nil {
		return LikeResult{}, err
	}
	theyLikeYou, err := e.stores.Likes.Exists(ctx, likedID, likerID)
	if err != nil {
		return LikeResult{}, err
	}

	if theyLikeYou {
		return e.formMatch(ctx, likerID, likedID)
	}

	if !alreadyLiked {
		if err := e.stores.Likes.Insert(ctx, likerID, likedID); err != nil {
			return LikeResult{}, err
		}
		e.invalidate(ctx, likedID)
		e.log.Debug("like recorded", "liker", likerID, "liked", likedID)
	}
	return LikeResult{Matched: false}, nil
}

// formMatch creates the match and consumes the reciprocal edge, plus any
// forward edge left by a lost pair lock.
// A Conflict from the registry means the pair was matched concurrently;
// the stored match is used instead.
func (e *Engine) formMatch(ctx context.Context, likerID, likedID string) (LikeResult, error) {
	match, err := e.stores.Matches.Create(ctx, likerID, likedID)
	if svcErr.IsKind(err, svcErr.KindConflict) {
		e.log.Debug("match already exists, absorbing conflict", "liker", likerID, "liked", likedID)
		match, err = e.stores.Matches.FindByPair(ctx, likerID, likedID)
	}
	if err != nil {
		return LikeResult{}, err
	}

	if err := e.stores.Likes.Delete(ctx, likedID, likerID); err != nil {
		return LikeResult{}, err
	}
	if err := e.stores.Likes.Delete(ctx, likerID, likedID); err != nil {
		return LikeResult{}, err
	}
	e.invalidate(ctx, likerID, likedID)

	e.log.Info("match formed", "match_id", match.ID, "user_one", match.UserOneID, "user_two", match.UserTwoID)
	return LikeResult{Matched: true, MatchID: match.ID}, nil
}

func (e *Engine) invalidate(ctx context.Context, userIDs ...string) {
	if e.counts == nil {
		return
	}
	if err := e.counts.InvalidateLikeCount(ctx, userIDs...); err != nil {
		e.log.Warn("like counter invalidation failed", "users", userIDs, "err", err)
	}
}

func validateID(field, id string) error {
	if id == "" {
		return svcErr.InvalidArgument(field + " is required")
	}
	if err := uuid.Validate(id); err != nil {
		return svcErr.InvalidArgument(field + " must be a valid uuid")
	}
	return nil
}
