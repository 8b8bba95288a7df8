package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/devops-demo/items-api/internal/model"
	"github.com/devops-demo/items-api/internal/store"
)

// Publisher broadcasts item events to interested clients.
type Publisher interface {
	Publish(event model.ItemEvent)
}

// RESTHandler handles REST API requests for items.
type RESTHandler struct {
	store  store.Store
	events Publisher
	logger *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance. The events publisher
// may be nil, in which case mutations are not broadcast.
func NewRESTHandler(s store.Store, events Publisher, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		store:  s,
		events: events,
		logger: logger,
	}
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Root).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/items", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/items/{id}", h.UpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
}

// Root handles GET / requests with service metadata.
func (h *RESTHandler) Root(w http.ResponseWriter, _ *http.Request) {
	response := RootResponse{
		Message: "Welcome to the items API",
		Version: Version,
		Endpoints: map[string]string{
			"health":  "/health",
			"items":   "/items",
			"metrics": "/metrics",
			"events":  "/ws/events",
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, response)
}

// ListItems handles GET /items requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	h.logger.Debug("fetched all items", zap.Int("total", len(items)))
	h.writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /items/{id} requests.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, id, "get item")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /items requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	item, err := h.store.Create(ctx, input)
	if err != nil {
		h.handleStoreError(w, err, 0, "create item")
		return
	}

	h.logger.Info("created item", zap.Int("id", item.ID), zap.String("name", item.Name))
	h.publish(model.EventTypeCreated, *item)
	h.writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /items/{id} requests.
func (h *RESTHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	item, err := h.store.Update(ctx, id, input)
	if err != nil {
		h.handleStoreError(w, err, id, "update item")
		return
	}

	h.logger.Info("updated item", zap.Int("id", id))
	h.publish(model.EventTypeUpdated, *item)
	h.writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.store.Delete(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, id, "delete item")
		return
	}

	h.logger.Info("deleted item", zap.Int("id", id))
	h.publish(model.EventTypeDeleted, *item)
	h.writeJSON(w, http.StatusOK, DeleteResponse{
		Message: fmt.Sprintf("Item %d deleted successfully", id),
		Item:    *item,
	})
}

// itemID extracts and parses the {id} path variable. On failure it writes a
// 422 response and returns ok=false.
func (h *RESTHandler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.logger.Warn("invalid item id", zap.String("id", vars["id"]))
		h.writeError(w, http.StatusUnprocessableEntity, "item ID must be an integer")
		return 0, false
	}

	return id, true
}

// decodeInput decodes and validates a request body. On failure it writes a
// 422 response and returns ok=false.
func (h *RESTHandler) decodeInput(w http.ResponseWriter, r *http.Request) (model.ItemInput, bool) {
	var input model.ItemInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return input, false
	}

	if err := input.Validate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return input, false
	}

	return input, true
}

// publish broadcasts an item event if a publisher is configured.
func (h *RESTHandler) publish(eventType string, item model.Item) {
	if h.events == nil {
		return
	}
	h.events.Publish(model.NewItemEvent(eventType, item))
}

// handleStoreError handles store errors and writes appropriate HTTP responses.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, err error, id int, operation string) {
	if errors.Is(err, store.ErrNotFound) {
		h.logger.Warn("item not found", zap.Int("id", id), zap.String("operation", operation))
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("Item with ID %d not found", id))
		return
	}

	h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func (h *RESTHandler) writeError(w http.ResponseWriter, status int, message string) {
	response := model.ErrorResponse{
		Code:    status,
		Message: message,
	}
	h.writeJSON(w, status, response)
}
