package chat

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/server"
)

const ServiceName = "dating.v1.ChatService"

type ChatServer interface {
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServer)(nil),
	Methods: []grpc.MethodDesc{
		server.UnaryMethod(ServiceName, "SendMessage", (*Service).SendMessage),
		server.UnaryMethod(ServiceName, "ListMessages", (*Service).ListMessages),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dating/v1/chat",
}

// Registrar ties the Chat service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s *grpc.Server) {
	s.RegisterService(&serviceDesc, NewChatService(r.appCtx))
}
