// Package storage manages the downloader's on-disk output: the root
// output directory, one title-derived subdirectory per album, and one
// binary file per downloaded photo at <root>/<albumFolder>/<photoId>.jpg.
//
// Photo writes are atomic (temp file then rename) so the filesystem
// never holds a partially written photo under its final name.
package storage
