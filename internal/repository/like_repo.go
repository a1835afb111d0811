package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/match-service/internal/db"
)

// LikeRepository is the like ledger: one row per directed (liker, liked) edge.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Exists reports whether the edge liker -> liked is present.
func (r *LikeRepository) Exists(ctx context.Context, likerID, likedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		Count(&count).Error
	if err != nil {
		return false, storageErr("check like", err)
	}
	return count > 0, nil
}

// Insert adds the edge liker -> liked.
//
// Behavior:
//   - The composite PK makes the ordered pair unique.
//   - A duplicate insert is silently ignored (ON CONFLICT DO NOTHING), so
//     repeating the call is safe.
func (r *LikeRepository) Insert(ctx context.Context, likerID, likedID string) error {
	like := db.Like{LikerID: likerID, LikedID: likedID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "liker_id"}, {Name: "liked_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	return storageErr("insert like", err)
}

// Delete removes the edge liker -> liked. Deleting a missing edge is not an error.
func (r *LikeRepository) Delete(ctx context.Context, likerID, likedID string) error {
	err := r.db.WithContext(ctx).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		Delete(&db.Like{}).Error
	return storageErr("delete like", err)
}

// FindByLiker returns every edge the user created.
func (r *LikeRepository) FindByLiker(ctx context.Context, likerID string) ([]db.Like, error) {
	var likes []db.Like
	err := r.db.WithContext(ctx).
		Where("liker_id = ?", likerID).
		Order("created_at DESC, liked_id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, storageErr("find likes by liker", err)
	}
	return likes, nil
}

// FindByLiked returns edges pointing at the user, newest first, skipping
// likers listed in excludeLikers (typically users already matched).
func (r *LikeRepository) FindByLiked(ctx context.Context, likedID string, excludeLikers []string) ([]db.Like, error) {
	var likes []db.Like
	err := r.likedQuery(ctx, likedID, excludeLikers).
		Order("created_at DESC, liker_id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, storageErr("find likes by liked", err)
	}
	return likes, nil
}

// CountByLiked counts the same rows FindByLiked would return.
// Used as the fallback behind the redis counter.
func (r *LikeRepository) CountByLiked(ctx context.Context, likedID string, excludeLikers []string) (int64, error) {
	var count int64
	if err := r.likedQuery(ctx, likedID, excludeLikers).Count(&count).Error; err != nil {
		return 0, storageErr("count likes by liked", err)
	}
	return count, nil
}

func (r *LikeRepository) likedQuery(ctx context.Context, likedID string, excludeLikers []string) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("liked_id = ?", likedID)
	if len(excludeLikers) > 0 {
		query = query.Where("liker_id NOT IN ?", excludeLikers)
	}
	return query
}
