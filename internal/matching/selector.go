package matching

import (
	"context"
	"log/slog"

	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/repository"
	"github.com/oggyb/match-service/internal/utils/media"
)

const (
	DefaultDiscoveryLimit = 10
	MaxDiscoveryLimit     = 50
)

// Limits bounds discovery page sizes.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) clamp(limit int) int {
	def, hi := l.Default, l.Max
	if def <= 0 {
		def = DefaultDiscoveryLimit
	}
	if hi <= 0 {
		hi = MaxDiscoveryLimit
	}
	if limit <= 0 {
		limit = def
	}
	if limit > hi {
		limit = hi
	}
	return limit
}

// Selector answers read-only discovery questions. It never mutates stores.
type Selector struct {
	stores   Stores
	counts   LikeCountCache
	resolver media.Resolver
	limits   Limits
	log      *slog.Logger
}

func NewSelector(stores Stores, counts LikeCountCache, resolver media.Resolver, limits Limits, log *slog.Logger) *Selector {
	return &Selector{stores: stores, counts: counts, resolver: resolver, limits: limits, log: log}
}

// NextCandidates returns up to limit profiles the user may be shown next.
//
// Behavior:
//   - Excludes the user, everyone they liked and everyone they matched with.
//   - Keeps only genders admitted by the user's preference.
//   - Candidates come in insertion order.
func (s *Selector) NextCandidates(ctx context.Context, userID string, limit int) ([]ProfileSummary, error) {
	user, err := s.stores.Profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	genders, err := gendersFor(user.Preference)
	if err != nil {
		s.log.Error("bad stored preference", "user", userID, "preference", user.Preference)
		return nil, err
	}

	excluded, err := discoveryExclusions(ctx, s.stores, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.stores.Profiles.FindMany(ctx, repository.ProfileFilter{
		Genders:    genders,
		ExcludeIDs: excluded,
	}, s.limits.clamp(limit))
	if err != nil {
		return nil, err
	}

	out := make([]ProfileSummary, 0, len(users))
	for i := range users {
		out = append(out, summarize(&users[i], s.resolver))
	}
	s.log.Debug("candidates selected", "user", userID, "excluded", len(excluded), "count", len(out))
	return out, nil
}

// WhoLikedMe lists users who liked userID and are not matched with them, newest first.
func (s *Selector) WhoLikedMe(ctx context.Context, userID string) ([]Liker, error) {
	if _, err := s.stores.Profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	matched, err := matchedWith(ctx, s.stores.Matches, userID)
	if err != nil {
		return nil, err
	}
	likes, err := s.stores.Likes.FindByLiked(ctx, userID, matched)
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return []Liker{}, nil
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.LikerID)
	}
	users, err := s.stores.Profiles.FindMany(ctx, repository.ProfileFilter{IDs: ids}, 0)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]ProfileSummary, len(users))
	for i := range users {
		byID[users[i].ID] = summarize(&users[i], s.resolver)
	}

	out := make([]Liker, 0, len(likes))
	for _, l := range likes {
		profile, ok := byID[l.LikerID]
		if !ok {
			s.log.Warn("liker profile missing", "liker", l.LikerID, "liked", userID)
			continue
		}
		out = append(out, Liker{Profile: profile, LikedAt: l.CreatedAt})
	}
	return out, nil
}

// CountWhoLikedMe returns len(WhoLikedMe) without loading profiles.
// Cache-first strategy:
//  1. Read likes:count:<id> from the counter cache (TTL refreshed on hit).
//  2. On miss or cache error, read the counter generation, then count in the ledger.
//  3. Store the fresh count only if no like changed the ledger meanwhile.
func (s *Selector) CountWhoLikedMe(ctx context.Context, userID string) (int64, error) {
	cacheable := s.counts != nil
	var generation int64
	if cacheable {
		n, found, err := s.counts.GetLikeCount(ctx, userID)
		if err != nil {
			s.log.Warn("like counter read failed", "user", userID, "err", err)
		} else if found {
			return n, nil
		}
		generation, err = s.counts.LikeCountGeneration(ctx, userID)
		if err != nil {
			s.log.Warn("like counter generation read failed", "user", userID, "err", err)
			cacheable = false
		}
	}

	if _, err := s.stores.Profiles.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	matched, err := matchedWith(ctx, s.stores.Matches, userID)
	if err != nil {
		return 0, err
	}
	count, err := s.stores.Likes.CountByLiked(ctx, userID, matched)
	if err != nil {
		return 0, err
	}

	if cacheable {
		stored, err := s.counts.SetLikeCount(ctx, userID, count, generation)
		switch {
		case err != nil:
			s.log.Warn("like counter write failed", "user", userID, "err", err)
		case !stored:
			s.log.Debug("like counter changed while counting, not cached", "user", userID)
		}
	}
	return count, nil
}

// ListMatches returns every match of the user with the other member's profile, newest first.
func (s *Selector) ListMatches(ctx context.Context, userID string) ([]MatchSummary, error) {
	matches, err := s.stores.Matches.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []MatchSummary{}, nil
	}

	others := make([]string, 0, len(matches))
	for i := range matches {
		if other, ok := matches[i].OtherUser(userID); ok {
			others = append(others, other)
		}
	}
	users, err := s.stores.Profiles.FindMany(ctx, repository.ProfileFilter{IDs: others}, 0)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]ProfileSummary, len(users))
	for i := range users {
		byID[users[i].ID] = summarize(&users[i], s.resolver)
	}

	out := make([]MatchSummary, 0, len(matches))
	for i := range matches {
		other, _ := matches[i].OtherUser(userID)
		profile, ok := byID[other]
		if !ok {
			s.log.Warn("matched profile missing", "match_id", matches[i].ID, "user", other)
			continue
		}
		out = append(out, MatchSummary{
			MatchID:   matches[i].ID,
			CreatedAt: matches[i].CreatedAt,
			User:      profile,
		})
	}
	return out, nil
}

// GetMatch returns one match as seen by callerID. Non-participants get NotFound.
func (s *Selector) GetMatch(ctx context.Context, matchID, callerID string) (MatchSummary, error) {
	match, err := s.stores.Matches.FindByID(ctx, matchID)
	if err != nil {
		return MatchSummary{}, err
	}
	other, ok := match.OtherUser(callerID)
	if !ok {
		return MatchSummary{}, svcErr.NotFound("match not found")
	}
	user, err := s.stores.Profiles.GetByID(ctx, other)
	if err != nil {
		return MatchSummary{}, err
	}
	return MatchSummary{
		MatchID:   match.ID,
		CreatedAt: match.CreatedAt,
		User:      summarize(user, s.resolver),
	}, nil
}
