package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/db"
)

// ProfileFilter narrows FindMany. Empty fields do not filter.
type ProfileFilter struct {
	Genders    []db.Gender
	IDs        []string
	ExcludeIDs []string
}

// UserRepository is the profile store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create persists a new user. A taken email yields a Conflict error.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Interests == nil {
		user.Interests = db.StringList{}
	}
	if user.Photos == nil {
		user.Photos = db.StringList{}
	}
	return storageErr("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, lookupErr("get user", "user not found", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, lookupErr("get user by email", "user not found", err)
	}
	return &user, nil
}

// FindMany returns users matching the filter in insertion order.
// A limit <= 0 means no limit.
func (r *UserRepository) FindMany(ctx context.Context, filter ProfileFilter, limit int) ([]db.User, error) {
	query := r.db.WithContext(ctx).Model(&db.User{})

	if len(filter.Genders) > 0 {
		genders := make([]string, 0, len(filter.Genders))
		for _, g := range filter.Genders {
			genders = append(genders, string(g))
		}
		query = query.Where("gender IN ?", genders)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	query = query.Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var users []db.User
	if err := query.Find(&users).Error; err != nil {
		return nil, storageErr("find users", err)
	}
	return users, nil
}

// UpdateInterests replaces the user's interests.
func (r *UserRepository) UpdateInterests(ctx context.Context, id string, interests []string) (*db.User, error) {
	return r.mutate(ctx, "update interests", id, func(tx *gorm.DB, user *db.User) error {
		user.Interests = db.StringList(interests)
		return tx.Model(user).Update("interests", user.Interests).Error
	})
}

// UpdatePreference replaces the user's discovery preference.
func (r *UserRepository) UpdatePreference(ctx context.Context, id string, pref db.Preference) (*db.User, error) {
	return r.mutate(ctx, "update preference", id, func(tx *gorm.DB, user *db.User) error {
		user.Preference = pref
		return tx.Model(user).Update("preference", string(pref)).Error
	})
}

// AppendPhotos adds photo references after the existing ones.
func (r *UserRepository) AppendPhotos(ctx context.Context, id string, photos []string) (*db.User, error) {
	return r.mutate(ctx, "append photos", id, func(tx *gorm.DB, user *db.User) error {
		user.Photos = append(user.Photos, photos...)
		return tx.Model(user).Update("photos", user.Photos).Error
	})
}

// mutate loads the user inside a transaction and applies fn to it.
func (r *UserRepository) mutate(ctx context.Context, op, id string, fn func(tx *gorm.DB, user *db.User) error) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		return fn(tx, &user)
	})
	if err != nil {
		return nil, lookupErr(op, "user not found", err)
	}
	return &user, nil
}
