// Package api provides the client for the upstream album service.
//
// The service exposes three endpoint shapes: the album listing
// (GET /albums), per-album photo metadata (GET /photos?albumId=N), and
// the photo binary at each photo's URL. No authentication or custom
// headers beyond a User-Agent are required.
//
// All requests run through the retry layer; non-2xx statuses and
// network failures surface as classified *errors.Error values.
package api
