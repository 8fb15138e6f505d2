package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dropvault/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Available commands:
  add <path>...        queue files for upload
  remove <id>          drop a queued file
  queue                show the upload queue
  upload               start uploading queued files
  cancel               cancel the running upload
  watch                follow upload progress until the batch is stored
  files                list my files
  star <id>            star / unstar a file
  delete <id>          delete a file
  shared               list shared files
  share <id> <email>   send a share invitation
  link                 copy the share link
  theme                toggle dark mode
  exit | quit          leave the program`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	ShowQueue(ctx context.Context) error
	Upload(ctx context.Context) error
	Cancel(ctx context.Context) error
	Watch(ctx context.Context) error
	Files(ctx context.Context) error
	Star(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Shared(ctx context.Context) error
	Share(ctx context.Context, args []string) error
	Link(ctx context.Context) error
	Theme(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. It returns on
// scanner EOF or when the user types "exit" or "quit".
//
// Validation failures already surfaced as notifications (empty queue,
// malformed email) are not printed again; any other handler error is.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dv %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "add":
			err = a.Add(ctx, args)
		case "remove", "rm":
			err = a.Remove(ctx, args)
		case "queue", "q":
			err = a.ShowQueue(ctx)
		case "upload":
			err = a.Upload(ctx)
		case "cancel":
			err = a.Cancel(ctx)
		case "watch":
			err = a.Watch(ctx)
		case "files", "ls":
			err = a.Files(ctx)
		case "star":
			err = a.Star(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "shared":
			err = a.Shared(ctx)
		case "share":
			err = a.Share(ctx, args)
		case "link":
			err = a.Link(ctx)
		case "theme":
			err = a.Theme(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil && !errors.Is(err, common.ErrEmptyQueue) && !errors.Is(err, common.ErrInvalidEmail) {
			printlnFn("Error:", err)
		}
	}
}
