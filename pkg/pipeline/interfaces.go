package pipeline

import "albumdl/pkg/api"

// UpstreamClient defines the interface for upstream API operations
type UpstreamClient interface {
	FetchAlbums() ([]api.Album, error)
	FetchAlbumPhotos(albumID int) ([]api.Photo, error)
	DownloadPhoto(photoURL string) ([]byte, error)
}
