package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/dropvault/internal/client/format"
	"github.com/dmitrijs2005/dropvault/internal/client/models"
)

func queueView(files []models.QueuedFile, bar int) string {
	if len(files) == 0 {
		return "Upload queue is empty\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Files to Upload (%d)\n", len(files))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t[%s] %3d%%\n",
			f.ID, format.Icon(f.Name), f.Name, format.Bytes(f.SizeBytes, 2), f.Status,
			format.ProgressBar(f.ProgressPercent, bar), f.ProgressPercent)
	}
	_ = tw.Flush()
	return b.String()
}

func renderQueue(w io.Writer, files []models.QueuedFile, bar int) {
	fmt.Fprint(w, queueView(files, bar))
}

func renderStored(w io.Writer, files []models.StoredFile) {
	fmt.Fprintf(w, "My Files (%d)\n", len(files))
	if len(files) == 0 {
		fmt.Fprintln(w, "No files yet. Upload some files to get started.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range files {
		star := " "
		if f.Starred {
			star = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s %s\t%s\t%s\n",
			star, f.ID, format.Icon(f.Name), f.Name, format.Bytes(f.SizeBytes, 2), format.Date(f.DateAdded))
	}
	_ = tw.Flush()
}

func renderShared(w io.Writer, files []models.SharedFile) {
	fmt.Fprintf(w, "Shared Files (%d)\n", len(files))
	if len(files) == 0 {
		fmt.Fprintln(w, "No shared files yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
			f.ID, format.Icon(f.Name), f.Name, format.Bytes(f.SizeBytes, 2), f.Recipient, format.Date(f.DateShared))
	}
	_ = tw.Flush()
}
