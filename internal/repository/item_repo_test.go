package repository

import (
	"errors"
	"testing"

	"github.com/adyen/uitests/internal/models"
)

func TestItemRepository(t *testing.T) {
	seed := models.Item{ID: "seed-1", Name: "Premium Widget", Price: "$1.00"}
	repo := NewItemRepository(seed)

	if got := repo.List(); len(got) != 1 || got[0].ID != "seed-1" {
		t.Fatalf("expected seed item, got %+v", got)
	}

	item, err := models.NewItem("Gadget", "$2.00")
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("Failed to store item: %v", err)
	}
	if err := repo.Create(item); err == nil {
		t.Error("expected duplicate create to fail")
	}

	got, err := repo.Get(item.ID)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if got.Name != "Gadget" {
		t.Errorf("expected name Gadget, got %s", got.Name)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	if len(repo.List()) != 2 {
		t.Errorf("expected 2 items, got %d", len(repo.List()))
	}

	repo.Reset()
	if got := repo.List(); len(got) != 1 || got[0].ID != "seed-1" {
		t.Errorf("expected only seed item after reset, got %+v", got)
	}
}

func TestItemRepository_ListIsCopy(t *testing.T) {
	repo := NewItemRepository(models.Item{ID: "a", Name: "A", Price: "$1.00"})

	list := repo.List()
	list[0].Name = "mutated"

	if repo.List()[0].Name != "A" {
		t.Error("List must not expose internal storage")
	}
}
