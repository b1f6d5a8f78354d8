// Package activity appends immutable audit entries to items. Logging is
// best-effort: it accompanies some primary mutation and must never make
// that mutation fail, so errors end up in the operator log instead of
// the caller.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hammad535/task-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log writes one audit row for an item. If the acting user does not
// exist a placeholder row is created first, so logging never fails on
// referential grounds. The returned error is only ever reported to the
// operator log; callers get nothing to propagate.
func (l *Logger) Log(ctx context.Context, itemID, userID uuid.UUID, action, description string) {
	if err := l.write(ctx, itemID, userID, action, description); err != nil {
		log.Printf("❌ Error logging activity for item %s: %v", itemID, err)
	}
}

func (l *Logger) write(ctx context.Context, itemID, userID uuid.UUID, action, description string) error {
	if err := l.ensureUser(ctx, userID); err != nil {
		return err
	}

	if description == "" {
		description = action
	}

	entry := &model.ActivityLog{
		ItemID:      itemID,
		UserID:      userID,
		Action:      action,
		Description: description,
	}
	return l.db.WithContext(ctx).Create(entry).Error
}

// ensureUser creates a placeholder user row when the acting user id does
// not resolve. The reserved system actor gets its well-known identity;
// anything else gets a synthetic one.
func (l *Logger) ensureUser(ctx context.Context, userID uuid.UUID) error {
	var user model.User
	err := l.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	name := "Unknown User"
	email := fmt.Sprintf("user-%s@taskmanager.local", userID)
	if userID == model.SystemUserID {
		name = model.SystemUserName
		email = model.SystemUserEmail
	}

	// Concurrent first writes for the same unknown user race this
	// check; the conflict clause lets the loser proceed to its log row.
	return l.db.WithContext(ctx).Exec(
		"INSERT INTO users (id, email, name) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		userID, email, name,
	).Error
}
