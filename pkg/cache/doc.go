// Package cache implements the persistent key-value store that makes
// repeated downloader runs idempotent.
//
// Each key is one JSON file under a namespaced directory, written
// atomically (temp file, fsync, rename) so a crash never leaves a
// half-written entry. An entry carries its write timestamp; reads treat
// anything older than the TTL (7 days by default) as absent and remove
// it. Nothing else is ever evicted.
//
// The downloader uses three key shapes:
//
//	albums             the full album listing
//	photos-{albumId}   the photo metadata for one album
//	photo-{photoId}    completion marker for a downloaded photo
package cache
