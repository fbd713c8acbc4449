package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a direct message between two users. FromID is always the
// authenticated sender; only the sender may edit or delete the message.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	FromID    int64     `json:"from_id"`
	ToID      int64     `json:"to_id"`
	Read      bool      `json:"read"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
