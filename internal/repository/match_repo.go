package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/db"
)

// MatchRepository is the match registry.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create inserts a match for the unordered pair (a, b).
//
// Behavior:
//   - Ids are stored in canonical order so the unique index covers both directions.
//   - If the pair already exists a Conflict error is returned and nothing is written.
func (r *MatchRepository) Create(ctx context.Context, a, b string) (*db.Match, error) {
	one, two := db.CanonicalPair(a, b)
	match := &db.Match{UserOneID: one, UserTwoID: two}
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return nil, storageErr("create match", err)
	}
	return match, nil
}

// FindByPair returns the match between a and b in either order.
func (r *MatchRepository) FindByPair(ctx context.Context, a, b string) (*db.Match, error) {
	one, two := db.CanonicalPair(a, b)

	var match db.Match
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ?", one, two).
		First(&match).Error
	if err != nil {
		return nil, lookupErr("find match by pair", "match not found", err)
	}
	return &match, nil
}

// FindForUser returns every match the user participates in, newest first.
func (r *MatchRepository) FindForUser(ctx context.Context, userID string) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("created_at DESC, id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, storageErr("find matches for user", err)
	}
	return matches, nil
}

// FindByID returns a single match.
func (r *MatchRepository) FindByID(ctx context.Context, matchID string) (*db.Match, error) {
	var match db.Match
	if err := r.db.WithContext(ctx).Where("id = ?", matchID).First(&match).Error; err != nil {
		return nil, lookupErr("find match", "match not found", err)
	}
	return &match, nil
}
