// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"time"
)

// Validation errors for ItemInput.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrPriceRequired = errors.New("price is required")
)

// Item represents a product record managed by the service.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
}

// ItemInput is the request-body shape for creating or replacing an item.
// Pointer fields distinguish absent values from zero values so that
// defaults can be applied: a nil Description means "no description" and a
// nil InStock means true.
type ItemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	InStock     *bool    `json:"in_stock"`
}

// Validate checks that the required fields are present and well-formed.
func (in *ItemInput) Validate() error {
	if in.Name == nil {
		return ErrNameRequired
	}

	if *in.Name == "" {
		return ErrEmptyName
	}

	if in.Price == nil {
		return ErrPriceRequired
	}

	return nil
}

// Item builds a full Item from the input with the given id, filling in
// defaults for omitted optional fields. The input must have passed Validate.
func (in *ItemInput) Item(id int) Item {
	item := Item{
		ID:      id,
		Name:    *in.Name,
		Price:   *in.Price,
		InStock: true,
	}

	if in.Description != nil {
		item.Description = *in.Description
	}

	if in.InStock != nil {
		item.InStock = *in.InStock
	}

	return item
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Item event types published over the WebSocket feed.
const (
	EventTypeCreated = "item_created"
	EventTypeUpdated = "item_updated"
	EventTypeDeleted = "item_deleted"
)

// ItemEvent represents a store mutation broadcast to WebSocket clients.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      Item      `json:"item"`
	Timestamp time.Time `json:"timestamp"`
}

// NewItemEvent creates an ItemEvent for the given mutation type and item.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:      eventType,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}
