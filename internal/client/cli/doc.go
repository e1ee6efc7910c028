// Package cli provides the interactive GeoVision command-line client.
//
// It wires configuration, the local session store, the HTTP API client and
// an interactive REPL. Typical flow: restore a stored session, start a
// background token-refresh watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout against the GeoVision backend
//   - Session restore with server-side verification on startup
//   - Automatic token refresh shortly before expiry
//   - Listing and uploading geological datasets
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartRefreshWatcher, and runREPL for details.
package cli
