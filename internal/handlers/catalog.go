package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/models"
	"github.com/adyen/uitests/internal/repository"
)

// CatalogHandler renders the catalogue page and accepts the add-item form
type CatalogHandler struct {
	template *template.Template
	repo     *repository.ItemRepository
	title    string
	log      *logrus.Entry
}

// CatalogData represents the data for the catalogue template
type CatalogData struct {
	Title string
	Items []models.Item
	Error string
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(title string, repo *repository.ItemRepository) (*CatalogHandler, error) {
	tmpl, err := parseTemplate("catalog.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &CatalogHandler{
		template: tmpl,
		repo:     repo,
		title:    title,
		log:      logging.WithCategory("demoapp"),
	}, nil
}

// ServeHTTP handles GET / and POST /items
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, http.StatusOK, "")
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	item, err := models.NewItem(r.PostFormValue("name"), r.PostFormValue("price"))
	if errors.Is(err, models.ErrInvalidName) || errors.Is(err, models.ErrInvalidPrice) {
		h.render(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err == nil {
		err = h.repo.Create(item)
	}
	if err != nil {
		h.log.WithError(err).Error("failed to create item")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *CatalogHandler) render(w http.ResponseWriter, status int, message string) {
	data := CatalogData{
		Title: h.title,
		Items: h.repo.List(),
		Error: message,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("error rendering template")
	}
}

// BrokenHandler serves a page whose script throws, for exercising failure
// diagnostics
type BrokenHandler struct {
	template *template.Template
}

// NewBrokenHandler creates a new BrokenHandler
func NewBrokenHandler() (*BrokenHandler, error) {
	tmpl, err := parseTemplate("broken.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &BrokenHandler{template: tmpl}, nil
}

// ServeHTTP handles GET /broken
func (h *BrokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.template.Execute(w, nil); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
