package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"items-backend/internal/database"
	"items-backend/internal/models"
	"items-backend/internal/storage"
)

const defaultMaxUploadBytes = 10 << 20

type UploadRequest struct {
	Filename    string `json:"filename" example:"photo.png"`
	ContentType string `json:"content_type,omitempty" example:"image/png"`
	Data        string `json:"data" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
}

type UploadResponse struct {
	Success bool           `json:"success" example:"true"`
	Upload  *models.Upload `json:"upload"`
}

type UploadListResponse struct {
	Success bool            `json:"success" example:"true"`
	Uploads []models.Upload `json:"uploads"`
}

func (s *Server) maxUploadBytes() int64 {
	if s.config.Upload.MaxBytes > 0 {
		return s.config.Upload.MaxBytes
	}
	return defaultMaxUploadBytes
}

// decodePayload accepts plain base64 or a data URL
// ("data:image/png;base64,..."), returning the bytes and any media type the
// data URL carried.
func decodePayload(data string) ([]byte, string, error) {
	data = strings.TrimSpace(data)
	var mediaType string
	if strings.HasPrefix(data, "data:") {
		header, payload, ok := strings.Cut(data, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", validationError("data URL must be base64 encoded")
		}
		mediaType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		data = payload
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(data)
	}
	if err != nil {
		return nil, "", validationError("data must be valid base64")
	}
	return decoded, mediaType, nil
}

// @Summary      Upload a file to an item
// @Description  Stores base64-encoded content in object storage under items/<item_id>/<unix_millis>-<filename> and records the upload. Only the item owner may upload.
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId         path      string         true  "Item ID"
// @Param        uploadRequest  body      UploadRequest  true  "File content"
// @Success      201            {object}  UploadResponse
// @Failure      400            {object}  ErrorResponse
// @Failure      401            {object}  ErrorResponse
// @Failure      403            {object}  ErrorResponse
// @Failure      404            {object}  ErrorResponse
// @Failure      413            {object}  ErrorResponse
// @Failure      502            {object}  ErrorResponse "UPSTREAM_ERROR"
// @Router       /items/{itemId}/upload [post]
func (s *Server) UploadHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())
	maxBytes := s.maxUploadBytes()

	var req UploadRequest
	bodyLimit := base64.StdEncoding.EncodedLen(int(maxBytes)) + 64<<10
	if err := decodeJSON(w, r, &req, int64(bodyLimit)); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		s.writeError(w, r, validationError("filename is required"))
		return
	}
	if req.Data == "" {
		s.writeError(w, r, validationError("data is required"))
		return
	}

	content, mediaType, err := decodePayload(req.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(content) == 0 {
		s.writeError(w, r, validationError("data must not be empty"))
		return
	}
	if int64(len(content)) > maxBytes {
		s.writeError(w, r, &APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    CodeValidation,
			Message: fmt.Sprintf("File must not exceed %d bytes", maxBytes),
		})
		return
	}

	item, err := s.loadOwnedItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = mediaType
	}
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	uploadID, err := generateUniqueID(r.Context(), s.store.UploadExists)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := storage.UploadKey(item.ID, req.Filename, time.Now())
	fileURL, err := s.storage.Put(r.Context(), key, bytes.NewReader(content), int64(len(content)), contentType)
	if err != nil {
		s.writeError(w, r, upstreamFailure("Failed to store file", err))
		return
	}

	upload, err := s.store.CreateUpload(r.Context(), database.CreateUploadParams{
		ID:          uploadID,
		UserID:      identity.UserID(),
		ItemID:      item.ID,
		Filename:    req.Filename,
		StorageKey:  key,
		FileURL:     fileURL,
		FileSize:    int64(len(content)),
		ContentType: contentType,
	})
	if err != nil {
		s.deleteBlobs(r, []models.Upload{{ID: uploadID, StorageKey: key}})
		if errors.Is(err, database.ErrUploadTargetGone) {
			err = notFound("Item not found")
		}
		s.writeError(w, r, err)
		return
	}

	uploadedBytes.Add(float64(upload.FileSize))
	s.logEvent(r, identity.UserID(), database.EventUploadCreated, upload)
	s.writeJSON(w, r, http.StatusCreated, envelope{"upload": upload})
}

// @Summary      List uploads of an item
// @Description  Same visibility rules as reading the item.
// @Tags         uploads
// @Produce      json
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  UploadListResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /items/{itemId}/uploads [get]
func (s *Server) ListUploadsHandler(w http.ResponseWriter, r *http.Request) {
	item, err := s.loadReadableItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	uploads, err := s.store.ListUploadsForItem(r.Context(), item.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"uploads": uploads})
}
