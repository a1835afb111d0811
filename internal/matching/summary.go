package matching

import (
	"time"

	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/utils/media"
)

// ProfileSummary is the lightweight view shown in discovery and match lists.
type ProfileSummary struct {
	ID        string
	Name      string
	BirthDate time.Time
	Gender    db.Gender
	Photos    []string
}

// Liker is a user who liked the caller, with the time of the like.
type Liker struct {
	Profile ProfileSummary
	LikedAt time.Time
}

// MatchSummary is a match seen from one participant.
type MatchSummary struct {
	MatchID   string
	CreatedAt time.Time
	User      ProfileSummary
}

func summarize(u *db.User, resolver media.Resolver) ProfileSummary {
	return ProfileSummary{
		ID:        u.ID,
		Name:      u.Name,
		BirthDate: u.BirthDate,
		Gender:    u.Gender,
		Photos:    resolver.ResolveAll(u.Photos),
	}
}
