package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlbumsURL(t *testing.T) {
	assert.Equal(t, "https://jsonplaceholder.typicode.com/albums", AlbumsURL(DefaultBaseURL))
	assert.Equal(t, "http://localhost:8080/albums", AlbumsURL("http://localhost:8080"))
}

func TestAlbumPhotosURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		albumID  int
		expected string
	}{
		{
			name:     "first album",
			baseURL:  DefaultBaseURL,
			albumID:  1,
			expected: "https://jsonplaceholder.typicode.com/photos?albumId=1",
		},
		{
			name:     "larger id",
			baseURL:  DefaultBaseURL,
			albumID:  42,
			expected: "https://jsonplaceholder.typicode.com/photos?albumId=42",
		},
		{
			name:     "local server",
			baseURL:  "http://127.0.0.1:9999",
			albumID:  3,
			expected: "http://127.0.0.1:9999/photos?albumId=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AlbumPhotosURL(tt.baseURL, tt.albumID)
			assert.Equal(t, tt.expected, result)

			// Verify URL is properly encoded
			parsed, err := url.Parse(result)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, parsed.String())
		})
	}
}
