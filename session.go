package gocalc

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session identifies one run of the calculator.
type Session struct {
	ID        string
	StartTime time.Time
	UserID    int
	UserName  string
}

// NewSession initializes a new session with current environmental data.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		UserID:    os.Getuid(),
		UserName:  os.Getenv("USER"),
	}
}

// Fields returns the zap fields attached to every log line of the session.
func (s *Session) Fields() []zap.Field {
	return []zap.Field{
		zap.String("session_id", s.ID),
		zap.String("user", s.UserName),
	}
}
