package account

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/server"
)

const ServiceName = "dating.v1.AccountService"

type AccountServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetMe(context.Context, *GetMeRequest) (*GetMeResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdateInterests(context.Context, *UpdateInterestsRequest) (*UserResponse, error)
	UpdatePreference(context.Context, *UpdatePreferenceRequest) (*UserResponse, error)
	AddPhotos(context.Context, *AddPhotosRequest) (*UserResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		server.UnaryMethod(ServiceName, "Register", (*Service).Register),
		server.UnaryMethod(ServiceName, "Login", (*Service).Login),
		server.UnaryMethod(ServiceName, "GetMe", (*Service).GetMe),
		server.UnaryMethod(ServiceName, "GetProfile", (*Service).GetProfile),
		server.UnaryMethod(ServiceName, "UpdateInterests", (*Service).UpdateInterests),
		server.UnaryMethod(ServiceName, "UpdatePreference", (*Service).UpdatePreference),
		server.UnaryMethod(ServiceName, "AddPhotos", (*Service).AddPhotos),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dating/v1/account",
}

// Registrar ties the Account service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s *grpc.Server) {
	s.RegisterService(&serviceDesc, NewAccountService(r.appCtx))
}

// PublicMethods lists the calls allowed without a token.
func (r *Registrar) PublicMethods() []string {
	return []string{
		server.FullMethod(ServiceName, "Register"),
		server.FullMethod(ServiceName, "Login"),
	}
}
