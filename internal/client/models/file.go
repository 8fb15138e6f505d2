// Package models defines client-side data models used by the DropVault CLI.
package models

import "time"

// UploadStatus is the lifecycle state of a queued file:
// ready → uploading → done, after which the entry migrates to stored files.
type UploadStatus string

const (
	StatusReady     UploadStatus = "ready"
	StatusUploading UploadStatus = "uploading"
	StatusDone      UploadStatus = "done"
)

// FileHandle is a raw reference to a file selected by the user.
type FileHandle struct {
	Name     string
	Size     int64
	MimeType string
	// Path is empty for handles that do not come from the local filesystem.
	Path string
}

// QueuedFile is a selected file waiting for, or going through, a simulated upload.
type QueuedFile struct {
	ID              string
	Name            string
	SizeBytes       int64
	MimeType        string
	ProgressPercent int
	Status          UploadStatus
}

// StoredFile is a file the user owns after an upload batch completes.
type StoredFile struct {
	ID        string
	Name      string
	SizeBytes int64
	DateAdded time.Time
	Starred   bool
}

// SharedFile is a file shared with a recipient. Demo data only.
type SharedFile struct {
	ID         string
	Name       string
	SizeBytes  int64
	Recipient  string
	DateShared time.Time
}
