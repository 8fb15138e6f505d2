// Package notify carries user-visible feedback from the client core to the
// presentation layer. Delivery is fire-and-forget: notifiers return nothing
// and the core never waits on them.
package notify

import "fmt"

type Kind string

const (
	FilesAdded               Kind = "filesAdded"
	FileRemoved              Kind = "fileRemoved"
	UploadRejectedEmptyQueue Kind = "uploadRejectedEmptyQueue"
	UploadCompleted          Kind = "uploadCompleted"
	UploadCancelled          Kind = "uploadCancelled"
	FileStarToggled          Kind = "fileStarToggled"
	FileDeleted              Kind = "fileDeleted"

	ShareRejectedInvalidEmail Kind = "shareRejectedInvalidEmail"
	ShareSent                 Kind = "shareSent"
	ShareLinkCopied           Kind = "shareLinkCopied"
	ThemeChanged              Kind = "themeChanged"
)

// Level mirrors toast severities.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Event is a discrete notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind      Kind
	Count     int
	FileID    string
	Recipient string
	DarkMode  bool
}

func (e Event) Level() Level {
	switch e.Kind {
	case UploadRejectedEmptyQueue, ShareRejectedInvalidEmail:
		return LevelError
	case FileRemoved, UploadCancelled, ThemeChanged:
		return LevelInfo
	default:
		return LevelSuccess
	}
}

// Message renders the toast text shown to the user.
func (e Event) Message() string {
	switch e.Kind {
	case FilesAdded:
		return fmt.Sprintf("%d %s added to upload queue", e.Count, plural(e.Count, "file", "files"))
	case FileRemoved:
		return "File removed from upload queue"
	case UploadRejectedEmptyQueue:
		return "Please add files to upload"
	case UploadCompleted:
		return "All files uploaded successfully!"
	case UploadCancelled:
		return "Upload canceled"
	case FileStarToggled:
		return "File updated"
	case FileDeleted:
		return "File deleted"
	case ShareRejectedInvalidEmail:
		return "Please enter a valid email address"
	case ShareSent:
		return fmt.Sprintf("Share invitation sent to %s", e.Recipient)
	case ShareLinkCopied:
		return "Share link copied to clipboard"
	case ThemeChanged:
		if e.DarkMode {
			return "Switched to dark mode"
		}
		return "Switched to light mode"
	default:
		return string(e.Kind)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
