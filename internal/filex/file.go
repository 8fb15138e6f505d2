// Package filex turns local paths into file handles the upload queue accepts.
package filex

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dropvault/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

var ErrNotRegularFile = errors.New("not a regular file")

// Describe stats path and returns a handle carrying its base name, size and
// MIME type. The type comes from the extension when known and from the
// file's leading bytes otherwise.
func Describe(path string) (models.FileHandle, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return models.FileHandle{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType, err = sniff(path)
		if err != nil {
			return models.FileHandle{}, err
		}
	}

	return models.FileHandle{
		Name:     fi.Name(),
		Size:     fi.Size(),
		MimeType: mimeType,
		Path:     path,
	}, nil
}

// DescribeAll describes every path, stopping at the first failure.
func DescribeAll(paths []string) ([]models.FileHandle, error) {
	handles := make([]models.FileHandle, 0, len(paths))
	for _, p := range paths {
		h, err := Describe(p)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func sniff(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect type of %s: %w", path, err)
	}
	return mt.String(), nil
}
