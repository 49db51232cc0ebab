package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookAdded      EventType = "BOOK_ADDED"
	EventBookRemoved    EventType = "BOOK_REMOVED"
	EventBookCheckedOut EventType = "BOOK_CHECKED_OUT"
	EventBookReturned   EventType = "BOOK_RETURNED"
)

// CatalogEvent is published after a successful catalog mutation.
type CatalogEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	BookID     int       `json:"bookId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewCatalogEvent(typ EventType, bookID int, at time.Time) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.New(),
		Type:       typ,
		BookID:     bookID,
		OccurredAt: at,
	}
}

type Op string

const (
	OpCheckout Op = "checkout"
	OpReturn   Op = "return"
)

// Command is consumed from the commands topic.
type Command struct {
	Op     Op  `json:"op" validate:"required,oneof=checkout return"`
	BookID int `json:"bookId" validate:"required,gt=0"`
}

type AddBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genre" validate:"required"`
}

// BookFilter matches case-insensitively on every non-empty field.
type BookFilter struct {
	Title      string
	Author     string
	Genre      string
	CheckedOut *bool
}

type Availability struct {
	ID        int  `json:"id"`
	Available bool `json:"available"`
}

type Count struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}
