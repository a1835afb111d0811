package account

import (
	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/utils/media"
)

const birthDateLayout = "2006-01-02"

type RegisterRequest struct {
	Email      string   `json:"email" validate:"required,email,max=128"`
	Name       string   `json:"name" validate:"required,max=128"`
	Password   string   `json:"password" validate:"required,min=6,max=72"`
	BirthDate  string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender     string   `json:"gender" validate:"required,oneof=man woman"`
	Preference string   `json:"preference" validate:"required,oneof=man woman both"`
	Interests  []string `json:"interests" validate:"max=20,dive,required,max=64"`
	Photos     []string `json:"photos" validate:"max=5,dive,required,max=512"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt uint64 `json:"expires_at"`
	User      User   `json:"user"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// GetProfileResponse is the public view of another user.
type GetProfileResponse struct {
	Name   string   `json:"name"`
	Photos []string `json:"photos"`
}

type UpdateInterestsRequest struct {
	Interests []string `json:"interests" validate:"max=20,dive,required,max=64"`
}

type UpdatePreferenceRequest struct {
	Preference string `json:"preference" validate:"required,oneof=man woman both"`
}

type AddPhotosRequest struct {
	Photos []string `json:"photos" validate:"min=1,max=5,dive,required,max=512"`
}

type UserResponse struct {
	User User `json:"user"`
}

// User is the caller's own profile.
type User struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	BirthDate  string   `json:"birth_date"`
	Gender     string   `json:"gender"`
	Preference string   `json:"preference"`
	Interests  []string `json:"interests"`
	Photos     []string `json:"photos"`
}

func toUser(u *db.User, resolver media.Resolver) User {
	interests := []string(u.Interests)
	if interests == nil {
		interests = []string{}
	}
	return User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		BirthDate:  u.BirthDate.Format(birthDateLayout),
		Gender:     string(u.Gender),
		Preference: string(u.Preference),
		Interests:  interests,
		Photos:     resolver.ResolveAll(u.Photos),
	}
}
