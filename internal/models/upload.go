package models

import "time"

type Upload struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	ItemID      string    `json:"item_id"`
	Filename    string    `json:"filename"`
	StorageKey  string    `json:"-"`
	FileURL     string    `json:"file_url"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
