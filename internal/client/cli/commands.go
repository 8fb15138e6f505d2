package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dropvault/internal/client/uploads"
	"github.com/dmitrijs2005/dropvault/internal/filex"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("add <path>...")
	}
	handles, err := filex.DescribeAll(args)
	if err != nil {
		return err
	}
	a.uploads.Enqueue(ctx, handles)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <id>")
	}
	if !a.uploads.Dequeue(ctx, args[0]) {
		fmt.Fprintf(a.out, "No removable file %s in the queue\n", args[0])
	}
	return nil
}

func (a *App) ShowQueue(ctx context.Context) error {
	renderQueue(a.out, a.uploads.Queue(), barWidth(a.width()))
	return nil
}

func (a *App) Upload(ctx context.Context) error {
	return a.uploads.StartUpload(ctx)
}

func (a *App) Cancel(ctx context.Context) error {
	if !a.uploads.CancelUpload(ctx) {
		fmt.Fprintln(a.out, "No upload in progress")
	}
	return nil
}

// Watch redraws the queue whenever progress changes and returns once the
// batch has been stored or cancelled.
func (a *App) Watch(ctx context.Context) error {
	if !a.uploads.Uploading() {
		fmt.Fprintln(a.out, "No upload in progress")
		return nil
	}

	poll := a.config.TickInterval
	if poll <= 0 {
		poll = uploads.DefaultTickInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	last := ""
	for {
		view := queueView(a.uploads.Queue(), barWidth(a.width()))
		if view != last {
			fmt.Fprint(a.out, view)
			last = view
		}
		if !a.uploads.Uploading() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *App) Files(ctx context.Context) error {
	renderStored(a.out, a.uploads.Stored())
	return nil
}

func (a *App) Star(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("star <id>")
	}
	if !a.uploads.ToggleStar(ctx, args[0]) {
		fmt.Fprintf(a.out, "No file %s\n", args[0])
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	if !a.uploads.DeleteStored(ctx, args[0]) {
		fmt.Fprintf(a.out, "No file %s\n", args[0])
	}
	return nil
}

func (a *App) Shared(ctx context.Context) error {
	renderShared(a.out, a.sharing.Shared())
	return nil
}

func (a *App) Share(ctx context.Context, args []string) error {
	switch len(args) {
	case 1:
		return a.sharing.Share(ctx, args[0], "")
	case 2:
		return a.sharing.Share(ctx, args[0], args[1])
	default:
		return usage("share <id> <email>")
	}
}

func (a *App) Link(ctx context.Context) error {
	fmt.Fprintln(a.out, a.sharing.CopyLink(ctx))
	return nil
}

func (a *App) Theme(ctx context.Context) error {
	_, err := a.theme.Toggle(ctx)
	return err
}
