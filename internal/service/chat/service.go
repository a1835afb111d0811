package chat

import (
	"context"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/conversation"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/validation"
)

// Service implements dating.v1.ChatService on top of the conversation store.
type Service struct {
	appCtx       *app.AppContext
	conversation *conversation.Service
}

func NewChatService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, conversation: appCtx.Conversation()}
}

// SendMessage posts a message from the caller into one of their matches.
func (s *Service) SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("SendMessage called", "sender", callerID, "match_id", req.MatchID)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	msg, err := s.conversation.Send(ctx, req.MatchID, callerID, req.Content)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &SendMessageResponse{Message: toMessage(msg)}, nil
}

// ListMessages returns a page of the match's messages, oldest first.
//
// Behavior:
//   - Only participants can read a match.
//   - Supports cursor-based pagination with paginationToken.
func (s *Service) ListMessages(ctx context.Context, req *ListMessagesRequest) (*ListMessagesResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("ListMessages called", "user", callerID, "match_id", req.MatchID, "token", req.PaginationToken)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	page, err := s.conversation.List(ctx, req.MatchID, callerID, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &ListMessagesResponse{Messages: make([]Message, 0, len(page.Messages))}
	for i := range page.Messages {
		resp.Messages = append(resp.Messages, toMessage(&page.Messages[i]))
	}
	if page.NextPageToken != nil {
		resp.NextPaginationToken = page.NextPageToken
	}
	return resp, nil
}
