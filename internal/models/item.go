package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item represents a catalogue entry of the demo application
type Item struct {
	ID        string
	Name      string
	Price     string
	CreatedAt time.Time
}

// Domain errors
var (
	ErrInvalidName  = errors.New("item name cannot be empty")
	ErrInvalidPrice = errors.New("item price must look like $1.00")
)

var pricePattern = regexp.MustCompile(`^\$\d+\.\d{2}$`)

// NewItem creates a new item with validation
func NewItem(name, price string) (*Item, error) {
	name = strings.TrimSpace(name)
	price = strings.TrimSpace(price)

	if name == "" {
		return nil, ErrInvalidName
	}
	if !pricePattern.MatchString(price) {
		return nil, ErrInvalidPrice
	}

	return &Item{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}, nil
}
