package store

import "time"

// Role names seeded at bootstrap.
const (
	RoleAdmin      = "admin"
	RolePrivileged = "privileged"
)

// Names of the queue every deployment starts with.
const (
	MasterQueueName        = "Graveboards Queue"
	MasterQueueDescription = "Master queue for beatmaps to receive leaderboards"
)

// Role is a named capability grant.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:32;not null" json:"name"`
}

// User mirrors an osu! account known to the backend. The primary key is the
// upstream osu! user ID, never generated locally.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Roles     []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKey grants programmatic backend access to a user.
type APIKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreFetcherTask schedules background score collection for a user.
// One per user; created whenever a user row is created.
type ScoreFetcherTask struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	UserID  int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	Enabled bool  `gorm:"not null;default:false" json:"enabled"`
}

// Queue is a modding queue owned by a user.
type Queue struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      int64  `gorm:"index;not null" json:"user_id"`
	Name        string `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`
}

// Beatmapset mirrors an upstream beatmapset. Like User, the primary key is
// the upstream identifier.
type Beatmapset struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatorID int64     `gorm:"index;not null" json:"creator_id"`
	Title     string    `gorm:"size:256" json:"title"`
	Artist    string    `gorm:"size:256" json:"artist"`
	CreatedAt time.Time `json:"created_at"`
}

// Request asks for a beatmapset to be considered in a queue.
type Request struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"user_id"`
	QueueID      uint      `gorm:"index;not null" json:"queue_id"`
	BeatmapsetID int64     `gorm:"index;not null" json:"beatmapset_id"`
	Comment      string    `gorm:"size:1024" json:"comment"`
	Status       string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AllModels returns every managed model, in an order safe for counting and
// seeding (referenced tables first).
func AllModels() []any {
	return []any{
		&Role{},
		&User{},
		&APIKey{},
		&ScoreFetcherTask{},
		&Queue{},
		&Beatmapset{},
		&Request{},
	}
}
