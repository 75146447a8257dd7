package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/models"
	"github.com/adyen/uitests/internal/repository"
)

// ItemResponse represents an item sent to the client
type ItemResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// CreateItemRequest represents the item creation payload
type CreateItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ItemsHandler serves GET and POST /api/items
type ItemsHandler struct {
	repo *repository.ItemRepository
	log  *logrus.Entry
}

// NewItemsHandler creates a new items API handler
func NewItemsHandler(repo *repository.ItemRepository) *ItemsHandler {
	return &ItemsHandler{
		repo: repo,
		log:  logging.WithCategory("demoapp"),
	}
}

// ServeHTTP handles the items API
func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items := h.repo.List()
		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toItemResponse(item))
		}
		sendJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendErrorResponse(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		item, err := models.NewItem(req.Name, req.Price)
		if errors.Is(err, models.ErrInvalidName) || errors.Is(err, models.ErrInvalidPrice) {
			sendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err == nil {
			err = h.repo.Create(item)
		}
		if err != nil {
			h.log.WithError(err).Error("failed to create item")
			sendErrorResponse(w, "Failed to create item", http.StatusInternalServerError)
			return
		}

		h.log.WithField("id", item.ID).Info("item created")
		sendJSON(w, http.StatusCreated, toItemResponse(*item))
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ResetHandler serves POST /api/reset
type ResetHandler struct {
	repo *repository.ItemRepository
}

// NewResetHandler creates a new reset handler
func NewResetHandler(repo *repository.ItemRepository) *ResetHandler {
	return &ResetHandler{repo: repo}
}

// ServeHTTP restores the seed catalogue
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.repo.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler serves GET /api/health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toItemResponse(item models.Item) ItemResponse {
	return ItemResponse{ID: item.ID, Name: item.Name, Price: item.Price}
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.WithCategory("demoapp").WithError(err).Error("error encoding response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
