package repository

import (
	"errors"
	"sync"

	"github.com/adyen/uitests/internal/models"
)

// ErrItemNotFound is returned when no item has the requested ID
var ErrItemNotFound = errors.New("item not found")

// ItemRepository keeps the demo catalogue in memory
type ItemRepository struct {
	mu    sync.RWMutex
	seed  []models.Item
	items []models.Item
}

// NewItemRepository creates a repository holding a copy of seed
func NewItemRepository(seed ...models.Item) *ItemRepository {
	r := &ItemRepository{seed: append([]models.Item(nil), seed...)}
	r.Reset()
	return r
}

// Create stores a new item
func (r *ItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == item.ID {
			return errors.New("item already exists")
		}
	}
	r.items = append(r.items, *item)
	return nil
}

// Get retrieves an item by ID
func (r *ItemRepository) Get(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, ErrItemNotFound
}

// List returns all items in insertion order
func (r *ItemRepository) List() []models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Item(nil), r.items...)
}

// Reset restores the seed items
func (r *ItemRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Item(nil), r.seed...)
}
