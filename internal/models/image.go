package models

import "time"

type Image struct {
	ID          string    `json:"id" db:"id"`
	Bucket      string    `json:"bucket" db:"bucket"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	Length      int64     `json:"length" db:"length"`
	ChunkSize   int       `json:"chunk_size" db:"chunk_size"`
	UploadDate  time.Time `json:"upload_date" db:"upload_date"`
}
