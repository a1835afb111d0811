package chat

import "github.com/oggyb/match-service/internal/db"

type SendMessageRequest struct {
	MatchID string `json:"match_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type ListMessagesRequest struct {
	MatchID         string  `json:"match_id" validate:"required"`
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           int32   `json:"limit" validate:"min=0"`
}

type ListMessagesResponse struct {
	Messages            []Message `json:"messages"`
	NextPaginationToken *string   `json:"next_pagination_token,omitempty"`
}

type Message struct {
	ID            string `json:"id"`
	MatchID       string `json:"match_id"`
	SenderID      string `json:"sender_id"`
	Content       string `json:"content"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

func toMessage(m *db.Message) Message {
	return Message{
		ID:            m.ID,
		MatchID:       m.MatchID,
		SenderID:      m.SenderID,
		Content:       m.Content,
		UnixTimestamp: uint64(m.SentAt.UnixMilli()),
	}
}
