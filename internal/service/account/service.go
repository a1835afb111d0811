package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/db"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/repository"
	"github.com/oggyb/match-service/internal/validation"
)

// Service implements dating.v1.AccountService: registration, login and
// profile updates of the authenticated caller.
type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

func NewAccountService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Register creates a user. A taken email yields AlreadyExists.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	s.appCtx.Logger.Debug("Register called", "email", req.Email)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	birthDate, err := time.ParseInLocation(birthDateLayout, req.BirthDate, time.UTC)
	if err != nil {
		return nil, svcErr.Map(svcErr.InvalidArgument("birth_date must match 2006-01-02"))
	}
	if birthDate.After(time.Now()) {
		return nil, svcErr.Map(svcErr.InvalidArgument("birth_date is in the future"))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.appCtx.Logger.Error("hash password failed", "err", err)
		return nil, svcErr.Map(svcErr.Internal("could not hash password"))
	}

	user := &db.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		BirthDate:    birthDate,
		Gender:       db.Gender(req.Gender),
		Preference:   db.Preference(req.Preference),
		Interests:    db.StringList(req.Interests),
		Photos:       db.StringList(req.Photos),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if svcErr.IsKind(err, svcErr.KindConflict) {
			return nil, svcErr.Map(svcErr.Conflict("email already registered"))
		}
		s.appCtx.Logger.Error("create user failed", "err", err)
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Info("user registered", "user", user.ID)
	return &RegisterResponse{User: toUser(user, s.appCtx.Media)}, nil
}

// Login checks credentials and returns an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	s.appCtx.Logger.Debug("Login called", "email", req.Email)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if svcErr.IsKind(err, svcErr.KindNotFound) {
		return nil, svcErr.Map(svcErr.Unauthenticated("invalid credentials"))
	}
	if err != nil {
		return nil, svcErr.Map(err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.appCtx.Logger.Error("check password failed", "user", user.ID, "err", err)
		return nil, svcErr.Map(svcErr.Internal("could not verify password"))
	}
	if !ok {
		return nil, svcErr.Map(svcErr.Unauthenticated("invalid credentials"))
	}

	token, expiresAt, err := s.appCtx.Tokens.Issue(user.ID)
	if err != nil {
		s.appCtx.Logger.Error("issue token failed", "user", user.ID, "err", err)
		return nil, svcErr.Map(svcErr.Internal("could not issue token"))
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: uint64(expiresAt.UnixMilli()),
		User:      toUser(user, s.appCtx.Media),
	}, nil
}

// GetMe returns the caller's own profile.
func (s *Service) GetMe(ctx context.Context, _ *GetMeRequest) (*GetMeResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &GetMeResponse{User: toUser(user, s.appCtx.Media)}, nil
}

// GetProfile returns the public view (name, photos) of any user.
func (s *Service) GetProfile(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	if _, err := auth.RequireCaller(ctx); err != nil {
		return nil, svcErr.Map(err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	if err := uuid.Validate(req.UserID); err != nil {
		return nil, svcErr.Map(svcErr.InvalidArgument("user_id must be a valid uuid"))
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &GetProfileResponse{
		Name:   user.Name,
		Photos: s.appCtx.Media.ResolveAll(user.Photos),
	}, nil
}

// UpdateInterests replaces the caller's interests.
func (s *Service) UpdateInterests(ctx context.Context, req *UpdateInterestsRequest) (*UserResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	interests := make([]string, 0, len(req.Interests))
	for _, i := range req.Interests {
		interests = append(interests, strings.TrimSpace(i))
	}
	user, err := s.users.UpdateInterests(ctx, callerID, interests)
	if err != nil {
		s.appCtx.Logger.Error("update interests failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &UserResponse{User: toUser(user, s.appCtx.Media)}, nil
}

// UpdatePreference changes who the caller is shown in discovery.
func (s *Service) UpdatePreference(ctx context.Context, req *UpdatePreferenceRequest) (*UserResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	user, err := s.users.UpdatePreference(ctx, callerID, db.Preference(req.Preference))
	if err != nil {
		s.appCtx.Logger.Error("update preference failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &UserResponse{User: toUser(user, s.appCtx.Media)}, nil
}

// AddPhotos appends 1 to 5 photo references to the caller's profile.
func (s *Service) AddPhotos(ctx context.Context, req *AddPhotosRequest) (*UserResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	user, err := s.users.AppendPhotos(ctx, callerID, req.Photos)
	if err != nil {
		s.appCtx.Logger.Error("add photos failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &UserResponse{User: toUser(user, s.appCtx.Media)}, nil
}
