// Package pipeline sequences the whole download run.
//
// Control flow: Run -> ListAlbums -> (per album) ListAlbumPhotos ->
// (per photo, capped) DownloadPhoto. Every fetch goes through the
// retrying API client; every cacheable result goes through the
// persistent cache before and after the network call, which makes
// repeated runs idempotent.
//
// Everything is sequential. One pause follows each photo download and
// each album, as politeness toward the upstream API.
package pipeline
