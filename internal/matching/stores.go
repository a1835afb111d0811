package matching

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/repository"
)

// LikeLedger records directed likes.
type LikeLedger interface {
	Exists(ctx context.Context, likerID, likedID string) (bool, error)
	Insert(ctx context.Context, likerID, likedID string) error
	Delete(ctx context.Context, likerID, likedID string) error
	FindByLiker(ctx context.Context, likerID string) ([]db.Like, error)
	FindByLiked(ctx context.Context, likedID string, excludeLikers []string) ([]db.Like, error)
	CountByLiked(ctx context.Context, likedID string, excludeLikers []string) (int64, error)
}

// MatchRegistry records confirmed mutual matches.
// Create must return a Conflict error when the unordered pair already exists.
type MatchRegistry interface {
	Create(ctx context.Context, a, b string) (*db.Match, error)
	FindByPair(ctx context.Context, a, b string) (*db.Match, error)
	FindForUser(ctx context.Context, userID string) ([]db.Match, error)
	FindByID(ctx context.Context, matchID string) (*db.Match, error)
}

// ProfileStore is the read side of the user store.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*db.User, error)
	FindMany(ctx context.Context, filter repository.ProfileFilter, limit int) ([]db.User, error)
}

// PairLocker serialises work on an unordered user pair.
type PairLocker interface {
	LockPair(ctx context.Context, a, b string) (unlock func(), err error)
}

// LikeCountCache holds the who-liked-me counters.
// SetLikeCount must not store count if InvalidateLikeCount ran for the user
// after generation was read.
type LikeCountCache interface {
	GetLikeCount(ctx context.Context, userID string) (int64, bool, error)
	LikeCountGeneration(ctx context.Context, userID string) (int64, error)
	SetLikeCount(ctx context.Context, userID string, count, generation int64) (bool, error)
	InvalidateLikeCount(ctx context.Context, userIDs ...string) error
}

// Stores bundles the persistence collaborators of the engine and selector.
type Stores struct {
	Likes    LikeLedger
	Matches  MatchRegistry
	Profiles ProfileStore
}

// NewStores wires the gorm repositories.
func NewStores(database *gorm.DB) Stores {
	return Stores{
		Likes:    repository.NewLikeRepository(database),
		Matches:  repository.NewMatchRepository(database),
		Profiles: repository.NewUserRepository(database),
	}
}
