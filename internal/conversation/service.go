// Package conversation stores and lists messages exchanged inside a match.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oggyb/match-service/internal/db"
	svcErr "github.com/oggyb/match-service/internal/errors"
)

const (
	MaxContentLength = 2000
	DefaultPageSize  = 50
	MaxPageSize      = 200
)

// MessageStore persists messages.
type MessageStore interface {
	Append(ctx context.Context, msg *db.Message) error
	ListByMatch(ctx context.Context, matchID string, pageToken *string, limit int) ([]db.Message, *string, error)
}

// MatchLookup resolves the match a message belongs to.
type MatchLookup interface {
	FindByID(ctx context.Context, matchID string) (*db.Match, error)
}

// Page is one slice of a conversation.
type Page struct {
	Messages      []db.Message
	NextPageToken *string
}

type Service struct {
	messages MessageStore
	matches  MatchLookup
	now      func() time.Time
	log      *slog.Logger
}

func NewService(messages MessageStore, matches MatchLookup, log *slog.Logger) *Service {
	return &Service{messages: messages, matches: matches, now: time.Now, log: log}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Send appends a message from senderID to the match.
//
// Behavior:
//   - Content is trimmed and must be 1..MaxContentLength characters.
//   - Only a participant may send; anyone else gets NotFound.
//   - SentAt comes from the server clock in UTC with millisecond precision.
func (s *Service) Send(ctx context.Context, matchID, senderID, content string) (*db.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, svcErr.InvalidArgument("content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, svcErr.InvalidArgument("content is too long")
	}

	if err := s.authorize(ctx, matchID, senderID); err != nil {
		return nil, err
	}

	msg := &db.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
		SentAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		s.log.Error("append message failed", "match_id", matchID, "err", err)
		return nil, err
	}
	s.log.Debug("message sent", "match_id", matchID, "message_id", msg.ID)
	return msg, nil
}

// List returns messages of the match in (sent_at, id) ascending order.
func (s *Service) List(ctx context.Context, matchID, callerID string, pageToken *string, limit int) (Page, error) {
	if err := s.authorize(ctx, matchID, callerID); err != nil {
		return Page{}, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	msgs, next, err := s.messages.ListByMatch(ctx, matchID, pageToken, limit)
	if err != nil {
		return Page{}, err
	}
	return Page{Messages: msgs, NextPageToken: next}, nil
}

func (s *Service) authorize(ctx context.Context, matchID, userID string) error {
	if matchID == "" {
		return svcErr.InvalidArgument("match_id is required")
	}
	match, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(userID) {
		return svcErr.NotFound("match not found")
	}
	return nil
}
