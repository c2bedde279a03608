package models

import "time"

type VideoStatus string

const (
	VideoPublished VideoStatus = "PUBLISHED"
	VideoDraft     VideoStatus = "DRAFT"
)

type Video struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Caption          string      `json:"caption,omitempty"`
	Location         string      `json:"location,omitempty"`
	Category         string      `json:"category"`
	Tags             string      `json:"tags,omitempty"`
	VideoKey         string      `json:"-"`
	ThumbnailKey     string      `json:"-"`
	Status           VideoStatus `json:"status"`
	Views            int64       `json:"views"`
	Likes            int64       `json:"likes"`
	FileSize         int64       `json:"file_size"`
	OriginalFilename string      `json:"original_filename,omitempty"`
	ProfileID        string      `json:"profile_id"`
	UploadedAt       time.Time   `json:"uploaded_at"`
}
