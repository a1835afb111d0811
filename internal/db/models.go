package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMan   Gender = "man"
	GenderWoman Gender = "woman"
)

func (g Gender) Valid() bool {
	return g == GenderMan || g == GenderWoman
}

// Preference is the gender a user wants to be shown.
type Preference string

const (
	PreferenceMan   Preference = "man"
	PreferenceWoman Preference = "woman"
	PreferenceBoth  Preference = "both"
)

func (p Preference) Valid() bool {
	switch p {
	case PreferenceMan, PreferenceWoman, PreferenceBoth:
		return true
	}
	return false
}

// StringList is stored as a JSON array in a text column so it works
// the same way on MySQL, Postgres and SQLite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// User is a profile record. Owned by the profile store, never deleted.
type User struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Email        string     `gorm:"uniqueIndex;size:128;not null"`
	Name         string     `gorm:"size:128;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	BirthDate    time.Time  `gorm:"not null"`
	Gender       Gender     `gorm:"size:16;not null;index"`
	Preference   Preference `gorm:"size:16;not null"`
	Interests    StringList `gorm:"type:text"`
	Photos       StringList `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Like is a directed expression of interest (liker -> liked).
//
// Composite PK: (LikerID, LikedID)
//   - At most one edge per ordered pair.
//
// Indexes:
//   - idx_liked_created(liked_id, created_at) serves "who liked me".
type Like struct {
	LikerID   string    `gorm:"primaryKey;size:36"`
	LikedID   string    `gorm:"primaryKey;size:36;index:idx_liked_created,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_liked_created,priority:2"`
}

// Match records mutual interest between two users.
//
// UserOneID < UserTwoID always holds, so the unique index
// idx_match_pair(user_one_id, user_two_id) covers the unordered pair.
type Match struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserOneID string    `gorm:"size:36;not null;uniqueIndex:idx_match_pair,priority:1"`
	UserTwoID string    `gorm:"size:36;not null;uniqueIndex:idx_match_pair,priority:2;index:idx_match_user_two"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (m *Match) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// HasUser reports whether userID is one of the two participants.
func (m *Match) HasUser(userID string) bool {
	return m.UserOneID == userID || m.UserTwoID == userID
}

// OtherUser returns the participant that is not userID.
func (m *Match) OtherUser(userID string) (string, bool) {
	switch userID {
	case m.UserOneID:
		return m.UserTwoID, true
	case m.UserTwoID:
		return m.UserOneID, true
	}
	return "", false
}

// CanonicalPair orders two ids so the unordered pair has a single representation.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message belongs to exactly one match. IDs are UUIDv7 so they sort by creation time.
type Message struct {
	ID       string    `gorm:"primaryKey;size:36"`
	MatchID  string    `gorm:"size:36;not null;index:idx_match_sent,priority:1"`
	SenderID string    `gorm:"size:36;not null"`
	Content  string    `gorm:"type:text;not null"`
	SentAt   time.Time `gorm:"not null;index:idx_match_sent,priority:2"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id.String()
	}
	return nil
}

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{&User{}, &Like{}, &Match{}, &Message{}}
}
