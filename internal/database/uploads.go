package database

import (
	"context"
	"errors"

	"items-backend/internal/models"
)

// ErrUploadTargetGone means the item or user an upload refers to was deleted
// before the upload row could be written.
var ErrUploadTargetGone = errors.New("upload target no longer exists")

const uploadColumns = `id, user_id, item_id, filename, storage_key, file_url, file_size, content_type, created_at`

type CreateUploadParams struct {
	ID          string
	UserID      int64
	ItemID      string
	Filename    string
	StorageKey  string
	FileURL     string
	FileSize    int64
	ContentType string
}

func (q *Queries) CreateUpload(ctx context.Context, arg CreateUploadParams) (*models.Upload, error) {
	query := `
		INSERT INTO uploads (id, user_id, item_id, filename, storage_key, file_url, file_size, content_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + uploadColumns

	var upload models.Upload
	err := q.db.QueryRow(ctx, query,
		arg.ID, arg.UserID, arg.ItemID, arg.Filename, arg.StorageKey, arg.FileURL, arg.FileSize, arg.ContentType,
	).Scan(
		&upload.ID,
		&upload.UserID,
		&upload.ItemID,
		&upload.Filename,
		&upload.StorageKey,
		&upload.FileURL,
		&upload.FileSize,
		&upload.ContentType,
		&upload.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, ErrUploadTargetGone
		}
		return nil, err
	}
	return &upload, nil
}

func (q *Queries) ListUploadsForItem(ctx context.Context, itemID string) ([]models.Upload, error) {
	return q.listUploads(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE item_id = $1 ORDER BY created_at`, itemID)
}

func (q *Queries) ListUploadsForUser(ctx context.Context, userID int64) ([]models.Upload, error) {
	return q.listUploads(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (q *Queries) listUploads(ctx context.Context, query string, arg interface{}) ([]models.Upload, error) {
	rows, err := q.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		var upload models.Upload
		if err := rows.Scan(
			&upload.ID,
			&upload.UserID,
			&upload.ItemID,
			&upload.Filename,
			&upload.StorageKey,
			&upload.FileURL,
			&upload.FileSize,
			&upload.ContentType,
			&upload.CreatedAt,
		); err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return uploads, nil
}

func (q *Queries) UploadExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM uploads WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
