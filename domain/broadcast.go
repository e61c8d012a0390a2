package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

var (
	ErrTitleRequired = errors.New("broadcast title is required")
	ErrUnknownLevel  = errors.New("unknown broadcast level")
)

// Broadcast is an announcement an administrator pushes to every user, or to
// the members of one project when ProjectKey is set.
type Broadcast struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Level      string    `json:"level"`
	ProjectKey string    `json:"project_key,omitempty"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	Archived   bool      `json:"archived"`
	Read       bool      `json:"read,omitempty"`
}

// BroadcastLevel is an entry of the level picker.
type BroadcastLevel struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BroadcastLevels lists the levels in picker order.
func BroadcastLevels() []BroadcastLevel {
	return []BroadcastLevel{
		{Key: LevelInfo, Value: LevelInfo},
		{Key: LevelWarning, Value: LevelWarning},
	}
}

func IsValidLevel(level string) bool {
	for _, l := range BroadcastLevels() {
		if l.Value == level {
			return true
		}
	}
	return false
}

func (b *Broadcast) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if !IsValidLevel(b.Level) {
		return ErrUnknownLevel
	}
	return nil
}

// Scope is the project key, or "all" for a global broadcast.
func (b *Broadcast) Scope() string {
	if strings.TrimSpace(b.ProjectKey) == "" {
		return "all"
	}
	return b.ProjectKey
}
