package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/app/apptest"
	"github.com/oggyb/match-service/internal/service/account"
)

func setupService(t *testing.T) (*account.Service, *app.AppContext) {
	t.Helper()
	appCtx := apptest.New(t)
	return account.NewAccountService(appCtx), appCtx
}

func validRegister() *account.RegisterRequest {
	return &account.RegisterRequest{
		Email:      "Nina@Example.com",
		Name:       "Nina",
		Password:   "secret1",
		BirthDate:  "1996-04-12",
		Gender:     "woman",
		Preference: "both",
		Interests:  []string{"hiking"},
		Photos:     []string{"uploads/nina.jpg"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	reg, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "nina@example.com", reg.User.Email)
	assert.Equal(t, "1996-04-12", reg.User.BirthDate)
	assert.Equal(t, []string{"http://media.test/uploads/nina.jpg"}, reg.User.Photos)

	_, err = svc.Register(ctx, validRegister())
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	login, err := svc.Login(ctx, &account.LoginRequest{Email: "nina@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	sub, err := appCtx.Tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sub)

	_, err = svc.Login(ctx, &account.LoginRequest{Email: "nina@example.com", Password: "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = svc.Login(ctx, &account.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		name   string
		mutate func(r *account.RegisterRequest)
	}{
		{"bad email", func(r *account.RegisterRequest) { r.Email = "nope" }},
		{"short password", func(r *account.RegisterRequest) { r.Password = "123" }},
		{"bad gender", func(r *account.RegisterRequest) { r.Gender = "other" }},
		{"bad preference", func(r *account.RegisterRequest) { r.Preference = "anyone" }},
		{"bad birth date", func(r *account.RegisterRequest) { r.BirthDate = "12/04/1996" }},
		{"future birth date", func(r *account.RegisterRequest) { r.BirthDate = "2999-01-01" }},
		{"too many photos", func(r *account.RegisterRequest) { r.Photos = []string{"1", "2", "3", "4", "5", "6"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestProfileUpdates(t *testing.T) {
	svc, appCtx := setupService(t)
	reg, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	ctx := apptest.As(reg.User.ID)

	me, err := svc.GetMe(ctx, &account.GetMeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "both", me.User.Preference)

	upd, err := svc.UpdatePreference(ctx, &account.UpdatePreferenceRequest{Preference: "man"})
	require.NoError(t, err)
	assert.Equal(t, "man", upd.User.Preference)

	_, err = svc.UpdatePreference(ctx, &account.UpdatePreferenceRequest{Preference: "robots"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	upd, err = svc.UpdateInterests(ctx, &account.UpdateInterestsRequest{Interests: []string{" chess ", "tea"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"chess", "tea"}, upd.User.Interests)

	upd, err = svc.AddPhotos(ctx, &account.AddPhotosRequest{Photos: []string{"https://img.test/2.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://media.test/uploads/nina.jpg", "https://img.test/2.jpg"}, upd.User.Photos)

	_, err = svc.AddPhotos(ctx, &account.AddPhotosRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	other := apptest.User(t, appCtx, "omar", "man", "woman")
	pub, err := svc.GetProfile(ctx, &account.GetProfileRequest{UserID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, "omar", pub.Name)
	assert.Empty(t, pub.Photos)

	_, err = svc.GetProfile(ctx, &account.GetProfileRequest{UserID: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = svc.GetMe(context.Background(), &account.GetMeRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
