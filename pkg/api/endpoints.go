package api

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultBaseURL is the default upstream API root
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// AlbumsEndpoint is the endpoint for the album listing
	AlbumsEndpoint = "/albums"

	// PhotosEndpoint is the endpoint for photo metadata
	PhotosEndpoint = "/photos"
)

// AlbumsURL constructs the URL for fetching the album listing
func AlbumsURL(baseURL string) string {
	return baseURL + AlbumsEndpoint
}

// AlbumPhotosURL constructs the URL for fetching one album's photo metadata
func AlbumPhotosURL(baseURL string, albumID int) string {
	params := url.Values{}
	params.Set("albumId", strconv.Itoa(albumID))

	return fmt.Sprintf("%s%s?%s", baseURL, PhotosEndpoint, params.Encode())
}
