package explore

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/server"
)

const ServiceName = "dating.v1.ExploreService"

// ExploreServer is the method set served under ServiceName.
type ExploreServer interface {
	Like(context.Context, *LikeRequest) (*LikeResponse, error)
	Discover(context.Context, *DiscoverRequest) (*DiscoverResponse, error)
	WhoLikedMe(context.Context, *WhoLikedMeRequest) (*WhoLikedMeResponse, error)
	CountWhoLikedMe(context.Context, *CountWhoLikedMeRequest) (*CountWhoLikedMeResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
	GetMatch(context.Context, *GetMatchRequest) (*GetMatchResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExploreServer)(nil),
	Methods: []grpc.MethodDesc{
		server.UnaryMethod(ServiceName, "Like", (*Service).Like),
		server.UnaryMethod(ServiceName, "Discover", (*Service).Discover),
		server.UnaryMethod(ServiceName, "WhoLikedMe", (*Service).WhoLikedMe),
		server.UnaryMethod(ServiceName, "CountWhoLikedMe", (*Service).CountWhoLikedMe),
		server.UnaryMethod(ServiceName, "ListMatches", (*Service).ListMatches),
		server.UnaryMethod(ServiceName, "GetMatch", (*Service).GetMatch),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dating/v1/explore",
}

// Registrar ties the Explore service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Explore service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Explore service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	s.RegisterService(&serviceDesc, NewExploreService(r.appCtx))
}
