// Package server exposes sprite sheet detection over HTTP.
//
// The server accepts sheet uploads and runs the detect package's two
// modes, returning JSON. It is stateless: every request carries its own
// sheet, and nothing persists between requests.
//
// # Endpoints
//
//   - GET  /api/v1/healthz: liveness probe
//   - POST /api/v1/detect/grid: grid-mode detection, returns the ranked
//     candidate layouts and the top pick
//   - POST /api/v1/detect/sprites: irregular-mode detection, returns
//     per-sprite bounding boxes
//
// Sheets are uploaded either as a multipart form file named "sheet" or as
// the raw request body (PNG, JPEG, GIF, or BMP). Detection options
// default to the server configuration; query parameters override them per
// request.
//
// # Error Handling
//
// Errors are returned as JSON with the request ID:
//
//	{"error": "...", "request_id": "..."}
//
// Undecodable uploads and out-of-range options are 400; sheets the
// detector legitimately cannot segment (no candidates, no foreground)
// are 422.
//
// # Request IDs
//
// Every request is assigned a UUID, echoed in the X-Request-Id response
// header and attached to log lines. Clients may supply their own ID in
// the same header.
package server
