package explore

import (
	"context"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/auth"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/matching"
	"github.com/oggyb/match-service/internal/validation"
)

// Service implements the Explore gRPC API.
// It contains the request handling on top of the matching engine and selector.
// Each method is one endpoint of dating.v1.ExploreService; the caller is
// always the authenticated user.
type Service struct {
	appCtx   *app.AppContext
	engine   *matching.Engine
	selector *matching.Selector
}

// NewExploreService creates a new Explore service with dependencies from AppContext.
// Dependencies include:
//   - Matching engine (DB stores + redis pair lock)
//   - Discovery selector (DB stores + redis like counters)
func NewExploreService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		engine:   appCtx.Engine(),
		selector: appCtx.Selector(),
	}
}

// Like records that the caller likes another user.
//
// Behavior:
//   - Rejects self-likes and malformed ids.
//   - Returns matched=true with the match id when the other user already liked the caller.
//   - Repeating a like is harmless.
//
// Example:
//
//	svc.Like(ctx, &LikeRequest{LikedUserID: "9b2c..."})
func (s *Service) Like(ctx context.Context, req *LikeRequest) (*LikeResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("Like called", "liker", callerID, "liked", req.LikedUserID)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	res, err := s.engine.RecordLike(ctx, callerID, req.LikedUserID)
	if err != nil {
		s.appCtx.Logger.Error("RecordLike failed", "liker", callerID, "liked", req.LikedUserID, "err", err)
		return nil, svcErr.Map(err)
	}

	return &LikeResponse{Matched: res.Matched, MatchID: res.MatchID}, nil
}

// Discover returns the next profiles the caller may like.
// A zero limit uses the configured default; large limits are clamped.
func (s *Service) Discover(ctx context.Context, req *DiscoverRequest) (*DiscoverResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("Discover called", "user", callerID, "limit", req.Limit)

	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	candidates, err := s.selector.NextCandidates(ctx, callerID, int(req.Limit))
	if err != nil {
		s.appCtx.Logger.Error("NextCandidates failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &DiscoverResponse{Profiles: make([]Profile, 0, len(candidates))}
	for _, c := range candidates {
		resp.Profiles = append(resp.Profiles, toProfile(c))
	}
	s.appCtx.Logger.Debug("Discover result", "user", callerID, "count", len(resp.Profiles))
	return resp, nil
}

// WhoLikedMe returns users who liked the caller and are not matched with them, newest first.
func (s *Service) WhoLikedMe(ctx context.Context, _ *WhoLikedMeRequest) (*WhoLikedMeResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.appCtx.Logger.Debug("WhoLikedMe called", "user", callerID)

	likers, err := s.selector.WhoLikedMe(ctx, callerID)
	if err != nil {
		s.appCtx.Logger.Error("WhoLikedMe failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &WhoLikedMeResponse{Likers: make([]Liker, 0, len(likers))}
	for _, l := range likers {
		resp.Likers = append(resp.Likers, Liker{
			Profile:       toProfile(l.Profile),
			UnixTimestamp: uint64(l.LikedAt.UnixMilli()),
		})
	}
	return resp, nil
}

// CountWhoLikedMe returns how many users WhoLikedMe would list.
// Served from the redis counter when warm.
func (s *Service) CountWhoLikedMe(ctx context.Context, _ *CountWhoLikedMeRequest) (*CountWhoLikedMeResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	count, err := s.selector.CountWhoLikedMe(ctx, callerID)
	if err != nil {
		s.appCtx.Logger.Error("CountWhoLikedMe failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &CountWhoLikedMeResponse{Count: uint64(count)}, nil
}

// ListMatches returns the caller's matches, newest first.
func (s *Service) ListMatches(ctx context.Context, _ *ListMatchesRequest) (*ListMatchesResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	matches, err := s.selector.ListMatches(ctx, callerID)
	if err != nil {
		s.appCtx.Logger.Error("ListMatches failed", "user", callerID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &ListMatchesResponse{Matches: make([]Match, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, toMatch(m))
	}
	return resp, nil
}

// GetMatch returns one of the caller's matches.
func (s *Service) GetMatch(ctx context.Context, req *GetMatchRequest) (*GetMatchResponse, error) {
	callerID, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}

	m, err := s.selector.GetMatch(ctx, req.MatchID, callerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &GetMatchResponse{Match: toMatch(m)}, nil
}
