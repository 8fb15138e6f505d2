// Package cli provides the interactive DropVault command-line client.
//
// It wires configuration, logging, the upload queue manager, the sharing
// simulation and the theme preference, then runs a REPL that plays the part
// of the web UI: files are selected by path, queued, "uploaded" with live
// progress bars and end up in "My Files".
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
