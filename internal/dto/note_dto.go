package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=note folder"`
	ParentId    *uint64 `json:"parent_id"`
	Order       int     `json:"order"`

	// OwnerId is accepted on the wire but never trusted; the service
	// overwrites it with the authenticated owner.
	OwnerId uuid.UUID `json:"owner_id"`
}

type UpdateNoteRequest struct {
	Id          uint64
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type NoteResponse struct {
	Id          uint64    `json:"id"`
	ParentId    *uint64   `json:"parent_id"`
	OwnerId     uuid.UUID `json:"owner_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShowNoteResponse adds the owner-facing formatted timestamps that the
// single-item view is expected to carry pre-rendered.
type ShowNoteResponse struct {
	NoteResponse
	Created string `json:"created"`
	Updated string `json:"updated"`
}

type FolderResponse struct {
	NoteResponse
	Notes []*NoteResponse `json:"notes"`
}

type WsTicketResponse struct {
	Ticket string `json:"ticket"`
}
