package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"

	"items-backend/internal/database"
	"items-backend/internal/models"
)

const (
	idLength             = 21
	defaultListLimit     = 20
	maxListLimit         = 100
	anonymousListLimit   = 50
	maxItemNameLength    = 255
	maxDescriptionLength = 5000
)

type CreateItemRequest struct {
	Name        string         `json:"name" example:"X"`
	Description *string        `json:"description,omitempty" example:"A thing"`
	Metadata    map[string]any `json:"metadata,omitempty" swaggertype:"object"`
}

type UpdateItemRequest struct {
	Name        *string        `json:"name,omitempty" example:"Y"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" swaggertype:"object"`
}

type ItemResponse struct {
	Success bool         `json:"success" example:"true"`
	Item    *models.Item `json:"item"`
}

type ItemListResponse struct {
	Success bool          `json:"success" example:"true"`
	Items   []models.Item `json:"items"`
	Limit   int           `json:"limit" example:"20"`
	Offset  int           `json:"offset" example:"0"`
}

// generateUniqueID draws nanoids until exists reports a free one.
func generateUniqueID(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(idLength)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check id existence: %w", err)
		}
		if !taken {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

func parsePaging(r *http.Request, anonymous bool) (limit, offset int, err error) {
	limit = defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, validationError("limit must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, validationError("offset must be a non-negative integer")
		}
	}

	ceiling := maxListLimit
	if anonymous {
		ceiling = anonymousListLimit
	}
	if limit > ceiling {
		limit = ceiling
	}
	return limit, offset, nil
}

func validateItemFields(name, description *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return validationError("Item name cannot be empty")
		}
		if len(trimmed) > maxItemNameLength {
			return validationError("Item name must be at most 255 characters")
		}
		*name = trimmed
	}
	if description != nil && len(*description) > maxDescriptionLength {
		return validationError("Description must be at most 5000 characters")
	}
	return nil
}

// loadReadableItem fetches the item and checks that the request may see it:
// public items are visible to everyone, owned items only to their owner.
func (s *Server) loadReadableItem(r *http.Request) (*models.Item, error) {
	item, err := s.store.GetItemByID(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("Item not found")
	}
	if item.IsPublic() {
		return item, nil
	}
	identity := GetIdentityFromContext(r.Context())
	if identity == nil || !item.OwnedBy(identity.UserID()) {
		return nil, forbidden("You do not have access to this item")
	}
	return item, nil
}

// loadOwnedItem fetches the item and requires the caller to own it.
func (s *Server) loadOwnedItem(r *http.Request) (*models.Item, error) {
	identity := GetIdentityFromContext(r.Context())

	item, err := s.store.GetItemByID(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("Item not found")
	}
	if !item.OwnedBy(identity.UserID()) {
		return nil, forbidden("You do not own this item")
	}
	return item, nil
}

// @Summary      List items
// @Description  Anonymous callers see public items only (at most 50). Authenticated callers also see their own items (limit up to 100).
// @Tags         items
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Items to skip"
// @Success      200     {object}  ItemListResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /items [get]
func (s *Server) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	limit, offset, err := parsePaging(r, identity == nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var viewerID *int64
	if identity != nil {
		id := identity.UserID()
		viewerID = &id
	}

	items, err := s.store.ListItems(r.Context(), viewerID, limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"items": items, "limit": limit, "offset": offset})
}

// @Summary      Get item
// @Tags         items
// @Produce      json
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  ItemResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /items/{itemId} [get]
func (s *Server) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := s.loadReadableItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, envelope{"item": item})
}

// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createItemRequest  body      CreateItemRequest  true  "New item"
// @Success      201                {object}  ItemResponse
// @Failure      400                {object}  ErrorResponse
// @Failure      401                {object}  ErrorResponse
// @Router       /items [post]
func (s *Server) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	var req CreateItemRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateItemFields(&req.Name, req.Description); err != nil {
		s.writeError(w, r, err)
		return
	}

	itemID, err := generateUniqueID(r.Context(), s.store.ItemExists)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	userID := identity.UserID()
	item, err := s.store.CreateItem(r.Context(), database.CreateItemParams{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		UserID:      &userID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logEvent(r, userID, database.EventItemCreated, item)
	s.writeJSON(w, r, http.StatusCreated, envelope{"item": item})
}

// @Summary      Update item
// @Description  Changes any of name, description and metadata. Metadata is replaced as a whole.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId             path      string             true  "Item ID"
// @Param        updateItemRequest  body      UpdateItemRequest  true  "Fields to change"
// @Success      200                {object}  ItemResponse
// @Failure      400                {object}  ErrorResponse
// @Failure      401                {object}  ErrorResponse
// @Failure      403                {object}  ErrorResponse
// @Failure      404                {object}  ErrorResponse
// @Router       /items/{itemId} [put]
func (s *Server) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateItemFields(req.Name, req.Description); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch := database.ItemPatch{Name: req.Name, Description: req.Description, Metadata: req.Metadata}
	if patch.Empty() {
		s.writeError(w, r, validationError("At least one of name, description or metadata is required"))
		return
	}

	item, err := s.loadOwnedItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.store.UpdateItem(r.Context(), item.ID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if updated == nil {
		s.writeError(w, r, notFound("Item not found"))
		return
	}

	s.logEvent(r, *updated.UserID, database.EventItemUpdated, updated)
	s.writeJSON(w, r, http.StatusOK, envelope{"item": updated})
}

// @Summary      Delete item
// @Description  Deletes the item and its uploads. Blobs that cannot be removed from storage are left behind and logged.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  MessageResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /items/{itemId} [delete]
func (s *Server) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := s.loadOwnedItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	uploads, err := s.store.ListUploadsForItem(r.Context(), item.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleteBlobs(r, uploads)

	deleted, err := s.store.DeleteItem(r.Context(), item.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, notFound("Item not found"))
		return
	}

	s.logEvent(r, *item.UserID, database.EventItemDeleted, map[string]string{"id": item.ID})
	s.writeJSON(w, r, http.StatusOK, envelope{"message": "Item deleted"})
}

// deleteBlobs removes stored objects of uploads. Failures only get logged so
// the surrounding delete still goes through.
func (s *Server) deleteBlobs(r *http.Request, uploads []models.Upload) {
	for _, upload := range uploads {
		if upload.StorageKey == "" {
			continue
		}
		if err := s.storage.Delete(r.Context(), upload.StorageKey); err != nil {
			s.logger.Warn(r.Context(), "failed to delete stored object, leaving it orphaned",
				"upload_id", upload.ID, "key", upload.StorageKey, "error", err)
		}
	}
}

func (s *Server) logEvent(r *http.Request, userID int64, eventType string, payload any) {
	if err := s.store.LogEvent(r.Context(), userID, eventType, payload); err != nil {
		s.logger.Warn(r.Context(), "failed to journal event", "event_type", eventType, "error", err)
	}
}
