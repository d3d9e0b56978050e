package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"items-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, name, description, user_id, metadata, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.UserID,
		&item.Metadata,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if item.Metadata == nil {
		item.Metadata = map[string]any{}
	}
	return &item, nil
}

func encodeMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item metadata: %w", err)
	}
	return b, nil
}

type CreateItemParams struct {
	ID          string
	Name        string
	Description *string
	UserID      *int64
	Metadata    map[string]any
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) (*models.Item, error) {
	metadata := arg.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	encoded, err := encodeMetadata(metadata)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO items (id, name, description, user_id, metadata)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		RETURNING ` + itemColumns

	return scanItem(q.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.Description, arg.UserID, encoded))
}

func (q *Queries) ItemExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (q *Queries) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return scanItem(q.db.QueryRow(ctx, query, id))
}

// ListItems returns public items, plus the viewer's own items when viewerID
// is set, newest first.
func (q *Queries) ListItems(ctx context.Context, viewerID *int64, limit int, offset int) ([]models.Item, error) {
	var rows pgx.Rows
	var err error

	if viewerID == nil {
		query := `SELECT ` + itemColumns + `
				  FROM items
				  WHERE user_id IS NULL
				  ORDER BY created_at DESC, id
				  LIMIT $1 OFFSET $2`
		rows, err = q.db.Query(ctx, query, limit, offset)
	} else {
		query := `SELECT ` + itemColumns + `
				  FROM items
				  WHERE user_id = $1 OR user_id IS NULL
				  ORDER BY created_at DESC, id
				  LIMIT $2 OFFSET $3`
		rows, err = q.db.Query(ctx, query, *viewerID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ItemPatch holds the item fields a caller wants to change. Nil fields are
// left untouched; a non-nil Metadata replaces the stored document.
type ItemPatch struct {
	Name        *string
	Description *string
	Metadata    map[string]any
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Metadata == nil
}

func (q *Queries) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*models.Item, error) {
	encoded, err := encodeMetadata(patch.Metadata)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE items
		SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			metadata = COALESCE($4::jsonb, metadata),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + itemColumns

	return scanItem(q.db.QueryRow(ctx, query, id, patch.Name, patch.Description, encoded))
}

func (q *Queries) DeleteItem(ctx context.Context, id string) (bool, error) {
	res, err := q.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
