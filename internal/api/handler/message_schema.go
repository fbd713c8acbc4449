package handler

import (
	"time"

	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

type createMessageRequest struct {
	Text string `json:"text"  validate:"required,min=2"`
	ToID int64  `json:"to_id" validate:"required,gt=0"`
}

// updateMessageRequest uses pointers so "unset" and "zero value" stay
// distinguishable: read=false is a real update.
type updateMessageRequest struct {
	Text *string `json:"text" validate:"omitempty,min=2"`
	Read *bool   `json:"read"`
}

type partyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type messageResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	FromID    int64     `json:"from_id"`
	ToID      int64     `json:"to_id"`
	Read      bool      `json:"read"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// messageDetailResponse embeds {id, name} summaries of both parties; returned
// from creation.
type messageDetailResponse struct {
	messageResponse
	From partyResponse `json:"from"`
	To   partyResponse `json:"to"`
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Text:      m.Text,
		FromID:    m.FromID,
		ToID:      m.ToID,
		Read:      m.Read,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMessageDetailResponse(d *ports.MessageDetail) messageDetailResponse {
	return messageDetailResponse{
		messageResponse: toMessageResponse(&d.Message),
		From:            partyResponse{ID: d.From.ID, Name: d.From.Name},
		To:              partyResponse{ID: d.To.ID, Name: d.To.Name},
	}
}
