// Package format renders sizes, dates, file kinds and progress bars for the
// terminal views.
package format

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// Bytes renders n with a 1024 base, e.g. "0 Bytes", "1.95 KB", "4.29 MB".
// Trailing zeros of the fraction are dropped; negative decimals mean zero.
func Bytes(n int64, decimals int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}

	i := 0
	v := float64(n)
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + " " + sizeUnits[i]
}

// Date renders t as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}

type Kind string

const (
	KindDocument     Kind = "document"
	KindImage        Kind = "image"
	KindSpreadsheet  Kind = "spreadsheet"
	KindPresentation Kind = "presentation"
	KindArchive      Kind = "archive"
)

var kindsByExt = map[string]Kind{
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage,
	".gif": KindImage, ".webp": KindImage, ".svg": KindImage,
	".xls": KindSpreadsheet, ".xlsx": KindSpreadsheet, ".csv": KindSpreadsheet, ".numbers": KindSpreadsheet,
	".ppt": KindPresentation, ".pptx": KindPresentation, ".key": KindPresentation,
	".zip": KindArchive, ".rar": KindArchive, ".tar": KindArchive, ".gz": KindArchive, ".7z": KindArchive,
}

// KindOf classifies a file by its extension, case-insensitively.
func KindOf(name string) Kind {
	if k, ok := kindsByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return k
	}
	return KindDocument
}

var kindIcons = map[Kind]string{
	KindDocument:     "[doc]",
	KindImage:        "[img]",
	KindSpreadsheet:  "[xls]",
	KindPresentation: "[ppt]",
	KindArchive:      "[zip]",
}

// Icon returns a short text badge for the file kind of name.
func Icon(name string) string {
	return kindIcons[KindOf(name)]
}

// ProgressBar renders percent (clamped to 0..100) as a bar of width cells.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
