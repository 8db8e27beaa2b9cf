package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types mirror the status value that triggered them.
const (
	NotificationTypePending  = "pending"
	NotificationTypeApproved = "approved"
	NotificationTypeRejected = "rejected"
	NotificationTypeSold     = "sold"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(userID uuid.UUID, message, typ string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		Read:      false,
		CreatedAt: time.Now(),
	}
}
