// Package rest exposes the comparison page over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	cerrors "github.com/abgdnv/productcompare/internal/errors"
	"github.com/abgdnv/productcompare/internal/product"
	"github.com/abgdnv/productcompare/internal/store"
	"github.com/abgdnv/productcompare/internal/view"
	"github.com/abgdnv/productcompare/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// StateStore is the part of store.Store the handler drives.
type StateStore interface {
	State() store.State
	Dispatch(action store.Action) store.State
	RunFetch(ctx context.Context) <-chan store.FetchResult
}

type Handler struct {
	store    StateStore
	session  *view.Session
	validate *validator.Validate
	logger   *slog.Logger
}

// StateResponse mirrors the store selectors.
type StateResponse struct {
	Products         []product.Product `json:"products"`
	FilteredProducts []product.Product `json:"filteredProducts"`
	Loading          bool              `json:"loading"`
	Error            *string           `json:"error"`
}

type SelectionResponse struct {
	ID       int   `json:"id"`
	Selected bool  `json:"selected"`
	IDs      []int `json:"selectedIds"`
}

type sortQuery struct {
	Sort string `validate:"omitempty,oneof=price rating"`
}

func NewHandler(s StateStore, session *view.Session, logger *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		session:  session,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the comparison page.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.Page)
		r.Get("/state", h.State)
		r.Post("/compare", h.Compare)
		r.Post("/reset", h.Reset)
		r.Post("/refresh", h.Refresh)
		r.Post("/{id}/select", h.ToggleSelection)
	})

	r.Get("/healthz", h.HealthCheck)
}

// Page renders the grid and comparison table in the requested sort order.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	opt, ok := h.parseSort(w, r)
	if !ok {
		return
	}
	page := view.Render(h.store.State(), h.session, opt)
	h.logger.DebugContext(r.Context(), "Rendered page", "sort", opt, "cards", len(page.Products), "loading", page.Loading)
	web.RespondJSON(w, h.logger, http.StatusOK, page)
}

// parseSort validates the sort query parameter and writes a 400 response when it is invalid.
func (h *Handler) parseSort(w http.ResponseWriter, r *http.Request) (view.SortOption, bool) {
	query := sortQuery{Sort: r.URL.Query().Get("sort")}
	if err := h.validate.Struct(query); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse["sort"] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return "", false
		}
		h.logger.ErrorContext(r.Context(), "Error validating query", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid sort option")
		return "", false
	}

	opt, err := view.ParseSortOption(query.Sort)
	if err != nil {
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return "", false
	}
	return opt, true
}

// State returns the raw selector outputs.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	s := h.store.State()
	web.RespondJSON(w, h.logger, http.StatusOK, StateResponse{
		Products:         store.SelectProducts(&s),
		FilteredProducts: store.SelectFilteredProducts(&s),
		Loading:          store.SelectLoading(&s),
		Error:            store.SelectError(&s),
	})
}

// ToggleSelection adds the product to the local selection or removes it.
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	s := h.store.State()
	known := slices.ContainsFunc(store.SelectProducts(&s), func(p product.Product) bool { return p.ID == id })
	if !known && !h.session.Has(id) {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
		return
	}

	selected := h.session.Toggle(id)
	h.logger.DebugContext(r.Context(), "Selection toggled", "ID", id, "selected", selected)
	web.RespondJSON(w, h.logger, http.StatusOK, SelectionResponse{ID: id, Selected: selected, IDs: h.session.Selected()})
}

// Compare narrows the comparison subset to the current selection.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	opt, ok := h.parseSort(w, r)
	if !ok {
		return
	}
	ids := h.session.Selected()
	if len(ids) == 0 {
		h.logger.WarnContext(r.Context(), "Compare requested without a selection")
		web.RespondError(w, h.logger, http.StatusBadRequest, cerrors.ErrEmptySelection.Error())
		return
	}
	next := h.store.Dispatch(store.Filter(ids))
	h.logger.InfoContext(r.Context(), "Comparison subset narrowed", "selected", len(ids), "filtered", len(next.FilteredProducts))
	web.RespondJSON(w, h.logger, http.StatusOK, view.Render(next, h.session, opt))
}

// Reset restores the comparison subset to the full catalog.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	opt, ok := h.parseSort(w, r)
	if !ok {
		return
	}
	s := h.store.State()
	next := h.store.Dispatch(store.LoadAll(store.SelectProducts(&s)))
	h.logger.InfoContext(r.Context(), "Comparison subset reset", "filtered", len(next.FilteredProducts))
	web.RespondJSON(w, h.logger, http.StatusOK, view.Render(next, h.session, opt))
}

// Refresh starts a new catalog fetch and returns before it settles.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.store.RunFetch(context.WithoutCancel(r.Context()))
	h.logger.InfoContext(r.Context(), "Catalog refresh started")
	w.WriteHeader(http.StatusAccepted)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
