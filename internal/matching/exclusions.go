package matching

import (
	"context"
	"fmt"

	"github.com/oggyb/match-service/internal/db"
	svcErr "github.com/oggyb/match-service/internal/errors"
)

// gendersFor maps a discovery preference to the genders it admits.
func gendersFor(pref db.Preference) ([]db.Gender, error) {
	switch pref {
	case db.PreferenceMan:
		return []db.Gender{db.GenderMan}, nil
	case db.PreferenceWoman:
		return []db.Gender{db.GenderWoman}, nil
	case db.PreferenceBoth:
		return []db.Gender{db.GenderMan, db.GenderWoman}, nil
	}
	return nil, svcErr.Internal(fmt.Sprintf("unknown preference %q", pref))
}

// matchedWith returns the other member of every match the user is in.
func matchedWith(ctx context.Context, registry MatchRegistry, userID string) ([]string, error) {
	matches, err := registry.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for i := range matches {
		if other, ok := matches[i].OtherUser(userID); ok {
			ids = append(ids, other)
		}
	}
	return ids, nil
}

// discoveryExclusions is {user} ∪ liked-by-user ∪ matched-with-user.
func discoveryExclusions(ctx context.Context, stores Stores, userID string) ([]string, error) {
	seen := map[string]struct{}{userID: {}}
	out := []string{userID}
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	liked, err := stores.Likes.FindByLiker(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, l := range liked {
		add(l.LikedID)
	}

	matched, err := matchedWith(ctx, stores.Matches, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range matched {
		add(id)
	}
	return out, nil
}
