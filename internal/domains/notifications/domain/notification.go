package domain

import (
	"errors"
	"strings"
	"time"
)

// Status tracks whether a notification has been seen by its recipient.
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// DefaultType is applied when a caller does not classify the message.
const DefaultType = "general"

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrInvalidUserID = errors.New("userId must be positive")
)

// Notification is a message addressed to a single user. ReadAt is nil
// until the notification is marked read.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	Type      string
	Status    Status
	CreatedAt time.Time
	ReadAt    *time.Time
}

// NewNotification builds an unread notification. An empty type defaults
// to DefaultType.
func NewNotification(userID int64, message, kind string, now time.Time) (*Notification, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if kind == "" {
		kind = DefaultType
	}
	return &Notification{
		UserID:    userID,
		Message:   message,
		Type:      kind,
		Status:    StatusUnread,
		CreatedAt: now,
	}, nil
}

// Validate re-applies core invariants for persistence.
func (n *Notification) Validate() error {
	if n.UserID <= 0 {
		return ErrInvalidUserID
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	if n.Type == "" {
		n.Type = DefaultType
	}
	if n.Status == "" {
		n.Status = StatusUnread
	}
	return nil
}

// MarkRead flips the notification to read and stamps ReadAt. Marking an
// already-read notification is a no-op and reports false.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Status == StatusRead {
		return false
	}
	n.Status = StatusRead
	n.ReadAt = &now
	return true
}
