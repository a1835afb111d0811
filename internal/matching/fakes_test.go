package matching_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/match-service/internal/db"
	svcErr "github.com/oggyb/match-service/internal/errors"
	"github.com/oggyb/match-service/internal/repository"
)

// memLikes is an in-memory LikeLedger.
type memLikes struct {
	mu    sync.Mutex
	edges map[[2]string]time.Time
}

func newMemLikes() *memLikes { return &memLikes{edges: map[[2]string]time.Time{}} }

func (m *memLikes) Exists(_ context.Context, liker, liked string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.edges[[2]string{liker, liked}]
	return ok, nil
}

func (m *memLikes) Insert(_ context.Context, liker, liked string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{liker, liked}
	if _, ok := m.edges[key]; !ok {
		m.edges[key] = time.Now()
	}
	return nil
}

func (m *memLikes) Delete(_ context.Context, liker, liked string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, [2]string{liker, liked})
	return nil
}

func (m *memLikes) FindByLiker(_ context.Context, liker string) ([]db.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Like
	for k, at := range m.edges {
		if k[0] == liker {
			out = append(out, db.Like{LikerID: k[0], LikedID: k[1], CreatedAt: at})
		}
	}
	return out, nil
}

func (m *memLikes) FindByLiked(_ context.Context, liked string, exclude []string) ([]db.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	skip := map[string]bool{}
	for _, id := range exclude {
		skip[id] = true
	}
	var out []db.Like
	for k, at := range m.edges {
		if k[1] == liked && !skip[k[0]] {
			out = append(out, db.Like{LikerID: k[0], LikedID: k[1], CreatedAt: at})
		}
	}
	return out, nil
}

func (m *memLikes) CountByLiked(ctx context.Context, liked string, exclude []string) (int64, error) {
	likes, _ := m.FindByLiked(ctx, liked, exclude)
	return int64(len(likes)), nil
}

func (m *memLikes) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.edges)
}

// memMatches is an in-memory MatchRegistry with a unique unordered pair.
type memMatches struct {
	mu     sync.Mutex
	byPair map[[2]string]*db.Match

	// beforeCreate runs without the mutex held, before the uniqueness check.
	beforeCreate func(a, b string)
}

func newMemMatches() *memMatches { return &memMatches{byPair: map[[2]string]*db.Match{}} }

func (m *memMatches) Create(_ context.Context, a, b string) (*db.Match, error) {
	if hook := m.beforeCreate; hook != nil {
		m.beforeCreate = nil
		hook(a, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	one, two := db.CanonicalPair(a, b)
	key := [2]string{one, two}
	if _, ok := m.byPair[key]; ok {
		return nil, svcErr.Conflict("create match: duplicate record")
	}
	match := &db.Match{ID: uuid.NewString(), UserOneID: one, UserTwoID: two, CreatedAt: time.Now()}
	m.byPair[key] = match
	return match, nil
}

func (m *memMatches) FindByPair(_ context.Context, a, b string) (*db.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	one, two := db.CanonicalPair(a, b)
	if match, ok := m.byPair[[2]string{one, two}]; ok {
		return match, nil
	}
	return nil, svcErr.NotFound("match not found")
}

func (m *memMatches) FindForUser(_ context.Context, userID string) ([]db.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Match
	for _, match := range m.byPair {
		if match.HasUser(userID) {
			out = append(out, *match)
		}
	}
	return out, nil
}

func (m *memMatches) FindByID(_ context.Context, id string) (*db.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, match := range m.byPair {
		if match.ID == id {
			return match, nil
		}
	}
	return nil, svcErr.NotFound("match not found")
}

func (m *memMatches) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byPair)
}

// memProfiles is an in-memory ProfileStore.
type memProfiles struct {
	users []db.User
}

func (m *memProfiles) add(gender db.Gender, pref db.Preference) string {
	id := uuid.NewString()
	m.users = append(m.users, db.User{ID: id, Name: id[:8], Gender: gender, Preference: pref})
	return id
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*db.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, svcErr.NotFound("user not found")
}

func (m *memProfiles) FindMany(_ context.Context, f repository.ProfileFilter, limit int) ([]db.User, error) {
	in := func(list []string, v string) bool {
		for _, x := range list {
			if x == v {
				return true
			}
		}
		return false
	}
	var out []db.User
	for _, u := range m.users {
		if len(f.Genders) > 0 {
			ok := false
			for _, g := range f.Genders {
				ok = ok || g == u.Gender
			}
			if !ok {
				continue
			}
		}
		if len(f.IDs) > 0 && !in(f.IDs, u.ID) {
			continue
		}
		if in(f.ExcludeIDs, u.ID) {
			continue
		}
		out = append(out, u)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// noLock lets racing callers through so the registry's uniqueness is the only guard.
type noLock struct{}

func (noLock) LockPair(context.Context, string, string) (func(), error) { return func() {}, nil }

// muLock is an in-process PairLocker.
type muLock struct {
	mu    sync.Mutex
	locks map[[2]string]*sync.Mutex
}

func (l *muLock) LockPair(_ context.Context, a, b string) (func(), error) {
	one, two := db.CanonicalPair(a, b)
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[[2]string]*sync.Mutex{}
	}
	m, ok := l.locks[[2]string{one, two}]
	if !ok {
		m = &sync.Mutex{}
		l.locks[[2]string{one, two}] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock, nil
}
