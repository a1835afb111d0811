package server_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oggyb/match-service/internal/app/apptest"
	"github.com/oggyb/match-service/internal/server"
	"github.com/oggyb/match-service/internal/service/account"
	"github.com/oggyb/match-service/internal/service/chat"
	"github.com/oggyb/match-service/internal/service/explore"
)

// dial starts the full server on an in-memory listener.
func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()
	appCtx := apptest.New(t)

	srv := server.NewGRPCServer(appCtx.Config, appCtx.Tokens, appCtx.Logger,
		account.NewRegistrar(appCtx),
		explore.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(server.CallJSON()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func call(ctx context.Context, conn *grpc.ClientConn, service, method string, req, resp interface{}) error {
	return conn.Invoke(ctx, server.FullMethod(service, method), req, resp)
}

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func register(t *testing.T, conn *grpc.ClientConn, email, gender, pref string) (string, string) {
	t.Helper()
	var reg account.RegisterResponse
	require.NoError(t, call(context.Background(), conn, account.ServiceName, "Register", &account.RegisterRequest{
		Email: email, Name: email, Password: "password", BirthDate: "1990-01-01", Gender: gender, Preference: pref,
	}, &reg))

	var login account.LoginResponse
	require.NoError(t, call(context.Background(), conn, account.ServiceName, "Login", &account.LoginRequest{
		Email: email, Password: "password",
	}, &login))
	return reg.User.ID, login.Token
}

func TestEndToEndMatchAndChat(t *testing.T) {
	conn := dial(t)

	aliceID, aliceTok := register(t, conn, "alice@test.io", "woman", "man")
	bobID, bobTok := register(t, conn, "bob@test.io", "man", "woman")

	var disc explore.DiscoverResponse
	require.NoError(t, call(withToken(aliceTok), conn, explore.ServiceName, "Discover", &explore.DiscoverRequest{}, &disc))
	require.Len(t, disc.Profiles, 1)
	assert.Equal(t, bobID, disc.Profiles[0].ID)

	var like explore.LikeResponse
	require.NoError(t, call(withToken(aliceTok), conn, explore.ServiceName, "Like", &explore.LikeRequest{LikedUserID: bobID}, &like))
	assert.False(t, like.Matched)

	var count explore.CountWhoLikedMeResponse
	require.NoError(t, call(withToken(bobTok), conn, explore.ServiceName, "CountWhoLikedMe", &explore.CountWhoLikedMeRequest{}, &count))
	assert.Equal(t, uint64(1), count.Count)

	require.NoError(t, call(withToken(bobTok), conn, explore.ServiceName, "Like", &explore.LikeRequest{LikedUserID: aliceID}, &like))
	require.True(t, like.Matched)

	var sent chat.SendMessageResponse
	require.NoError(t, call(withToken(bobTok), conn, chat.ServiceName, "SendMessage", &chat.SendMessageRequest{
		MatchID: like.MatchID, Content: "hey",
	}, &sent))

	var msgs chat.ListMessagesResponse
	require.NoError(t, call(withToken(aliceTok), conn, chat.ServiceName, "ListMessages", &chat.ListMessagesRequest{MatchID: like.MatchID}, &msgs))
	require.Len(t, msgs.Messages, 1)
	assert.Equal(t, "hey", msgs.Messages[0].Content)
	assert.Equal(t, bobID, msgs.Messages[0].SenderID)
}

func TestAuthRequired(t *testing.T) {
	conn := dial(t)

	err := call(context.Background(), conn, explore.ServiceName, "Discover", &explore.DiscoverRequest{}, &explore.DiscoverResponse{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	err = call(withToken("not-a-jwt"), conn, explore.ServiceName, "Discover", &explore.DiscoverRequest{}, &explore.DiscoverResponse{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHealthService(t *testing.T) {
	conn := dial(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{
		Service: explore.ServiceName,
	})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
