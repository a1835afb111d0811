// Package seed fills a database with demo users, likes and matches.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/matching"
	"github.com/oggyb/match-service/internal/repository"
)

// Liker records likes. *matching.Engine satisfies it.
type Liker interface {
	RecordLike(ctx context.Context, likerID, likedID string) (matching.LikeResult, error)
}

// Summary reports what was written.
type Summary struct {
	Users   int
	Likes   int
	Matches int
}

var preferences = []db.Preference{db.PreferenceMan, db.PreferenceWoman, db.PreferenceBoth}

// Run resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears messages, matches, likes and users.
//  2. Creates 20 users (10 men, 10 women), preferences cycling man/woman/both,
//     all with password "password".
//  3. Each user likes up to 6 users their preference admits; every 3rd like
//     is answered so matches form through the engine.
func Run(ctx context.Context, gdb *gorm.DB, likes Liker, log *slog.Logger, randSeed int64) (Summary, error) {
	r := rand.New(rand.NewSource(randSeed))

	// --- Fresh start ---
	for _, model := range []interface{}{&db.Message{}, &db.Match{}, &db.Like{}, &db.User{}} {
		if err := gdb.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return Summary{}, fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	log.Info("cleared existing data")

	hash, err := auth.HashPassword("password")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// --- Seed users (10 men, 10 women) ---
	users := repository.NewUserRepository(gdb)
	seeded := make([]*db.User, 0, 20)
	for i := 1; i <= 20; i++ {
		gender := db.GenderMan
		if i > 10 {
			gender = db.GenderWoman
		}
		u := &db.User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			Name:         fmt.Sprintf("User %d", i),
			PasswordHash: hash,
			BirthDate:    time.Date(1985+r.Intn(20), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
			Gender:       gender,
			Preference:   preferences[i%len(preferences)],
			Interests:    db.StringList{},
			Photos:       db.StringList{fmt.Sprintf("uploads/user%d.jpg", i)},
		}
		if err := users.Create(ctx, u); err != nil {
			return Summary{}, fmt.Errorf("failed to seed user: %w", err)
		}
		seeded = append(seeded, u)
	}
	log.Info("seeded users", "count", len(seeded))

	// --- Seed likes ---
	summary := Summary{Users: len(seeded)}
	counter := 0
	for _, liker := range seeded {
		for _, j := range r.Perm(len(seeded))[:6] {
			liked := seeded[j]
			if liked.ID == liker.ID || !admits(liker.Preference, liked.Gender) {
				continue
			}

			res, err := likes.RecordLike(ctx, liker.ID, liked.ID)
			if err != nil {
				return Summary{}, fmt.Errorf("failed to seed like: %w", err)
			}
			summary.Likes++
			if res.Matched {
				continue
			}

			// answer every 3rd like so some pairs match
			if counter%3 == 0 {
				if _, err := likes.RecordLike(ctx, liked.ID, liker.ID); err != nil {
					return Summary{}, fmt.Errorf("failed to seed reciprocal like: %w", err)
				}
				summary.Likes++
			}
			counter++
		}
	}

	var matches int64
	if err := gdb.WithContext(ctx).Model(&db.Match{}).Count(&matches).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to count matches: %w", err)
	}
	summary.Matches = int(matches)
	log.Info("seeded likes", "likes", summary.Likes, "matches", summary.Matches)

	return summary, nil
}

func admits(pref db.Preference, g db.Gender) bool {
	switch pref {
	case db.PreferenceMan:
		return g == db.GenderMan
	case db.PreferenceWoman:
		return g == db.GenderWoman
	case db.PreferenceBoth:
		return true
	}
	return false
}
