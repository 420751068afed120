package models

import "time"

// Note is owned by exactly one user; ownership is fixed at creation and
// never transferred. AttachmentKey is the S3 object key of the optional
// attachment, empty when none was uploaded.
type Note struct {
	ID            int64
	Title         string
	Content       string
	AttachmentKey string
	UserID        int64
	CreatedAt     time.Time
}
