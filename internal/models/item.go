package models

import "time"

// Item is owned by at most one user. A nil UserID marks a public item.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	UserID      *int64         `json:"user_id"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (i *Item) IsPublic() bool {
	return i.UserID == nil
}

func (i *Item) OwnedBy(userID int64) bool {
	return i.UserID != nil && *i.UserID == userID
}
