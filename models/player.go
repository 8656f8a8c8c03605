// models/player.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONArray stores an opaque, schema-free JSON array column. The server
// persists and returns these blobs verbatim; the client owns their shape.
type JSONArray []byte

// EmptyArray returns the zero value persisted for a fresh account.
func EmptyArray() JSONArray {
	return JSONArray("[]")
}

func (a JSONArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return string(a), nil
}

func (a *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = EmptyArray()
	case []byte:
		*a = append(JSONArray{}, v...)
	case string:
		*a = JSONArray(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONArray", value)
	}
	return nil
}

func (a JSONArray) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return a, nil
}

func (a *JSONArray) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON for JSONArray")
	}
	*a = append((*a)[:0], data...)
	return nil
}

// GormDataType tells GORM to create a jsonb column on PostgreSQL.
func (JSONArray) GormDataType() string {
	return "jsonb"
}

// Player is the single persisted record per account: credentials plus the
// mutable game-state blob. Pigs/Guilds/Marketplace are never inspected or
// validated server-side, and submitted coins values are trusted as-is —
// both are deliberate for this casual game, not oversights to patch here.
type Player struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Coins        int64     `json:"coins" gorm:"default:0"`
	Pigs         JSONArray `json:"pigs"`
	Guilds       JSONArray `json:"guilds"`
	PlayerGuild  *string   `json:"playerGuild"`
	Marketplace  JSONArray `json:"marketplace"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// LeaderboardEntry is the public ranking row exposed by /api/leaderboard.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
}
