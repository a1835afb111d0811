package explore

import "github.com/oggyb/match-service/internal/matching"

type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BirthDate string   `json:"birth_date"`
	Gender    string   `json:"gender"`
	Photos    []string `json:"photos"`
}

type LikeRequest struct {
	LikedUserID string `json:"liked_user_id" validate:"required"`
}

type LikeResponse struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}

type DiscoverRequest struct {
	Limit int32 `json:"limit" validate:"min=0"`
}

type DiscoverResponse struct {
	Profiles []Profile `json:"profiles"`
}

type WhoLikedMeRequest struct{}

type Liker struct {
	Profile       Profile `json:"profile"`
	UnixTimestamp uint64  `json:"unix_timestamp"`
}

type WhoLikedMeResponse struct {
	Likers []Liker `json:"likers"`
}

type CountWhoLikedMeRequest struct{}

type CountWhoLikedMeResponse struct {
	Count uint64 `json:"count"`
}

type ListMatchesRequest struct{}

type Match struct {
	MatchID       string  `json:"match_id"`
	UnixTimestamp uint64  `json:"unix_timestamp"`
	User          Profile `json:"user"`
}

type ListMatchesResponse struct {
	Matches []Match `json:"matches"`
}

type GetMatchRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

type GetMatchResponse struct {
	Match Match `json:"match"`
}

func toProfile(p matching.ProfileSummary) Profile {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return Profile{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format("2006-01-02"),
		Gender:    string(p.Gender),
		Photos:    photos,
	}
}

func toMatch(m matching.MatchSummary) Match {
	return Match{
		MatchID:       m.MatchID,
		UnixTimestamp: uint64(m.CreatedAt.UnixMilli()),
		User:          toProfile(m.User),
	}
}
