package pipeline

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"albumdl/pkg/api"
	"albumdl/pkg/cache"
	"albumdl/pkg/config"
	"albumdl/pkg/logger"
	"albumdl/pkg/ratelimit"
	"albumdl/pkg/storage"
)

// Cache key shapes (see pkg/cache)
const albumsKey = "albums"

func photosKey(albumID int) string {
	return fmt.Sprintf("photos-%d", albumID)
}

func photoKey(photoID int) string {
	return fmt.Sprintf("photo-%d", photoID)
}

// Pipeline orchestrates the album download process: list albums, list each
// album's photos, download a bounded number of photos per album. Processing
// is strictly sequential; the pacer pauses after each photo and each album.
type Pipeline struct {
	client UpstreamClient
	cache  *cache.Store
	store  *storage.Manager
	pacer  ratelimit.Pacer
	cfg    *config.Config
	logger logger.Logger

	downloaded int
	skipped    int
}

// New creates a Pipeline with all collaborators injected
func New(cfg *config.Config, client UpstreamClient, store *cache.Store, mgr *storage.Manager, pacer ratelimit.Pacer, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Pipeline{
		client: client,
		cache:  store,
		store:  mgr,
		pacer:  pacer,
		cfg:    cfg,
		logger: log,
	}
}

// Run processes every album in listing order. The first error anywhere
// aborts the run; work already cached or written stays durable, so a
// subsequent run resumes without re-doing it.
func (p *Pipeline) Run() error {
	runID := uuid.NewString()
	log := p.logger.WithField("run_id", runID)

	p.downloaded = 0
	p.skipped = 0

	log.InfoWithFields("starting download run", map[string]interface{}{
		"output_dir":       p.store.RootDir(),
		"photos_per_album": p.cfg.Download.PhotosPerAlbum,
	})

	albums, err := p.ListAlbums()
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	for _, album := range albums {
		if err := p.processAlbum(album); err != nil {
			return fmt.Errorf("album %d (%q): %w", album.ID, album.Title, err)
		}
		p.pacer.Pause()
	}

	log.InfoWithFields("download run completed", map[string]interface{}{
		"albums":     len(albums),
		"downloaded": p.downloaded,
		"skipped":    p.skipped,
	})

	return nil
}

// ListAlbums returns the album listing, cache-first under the "albums" key
func (p *Pipeline) ListAlbums() ([]api.Album, error) {
	var albums []api.Album
	hit, err := p.cache.Get(albumsKey, &albums)
	if err != nil {
		return nil, err
	}
	if hit {
		p.logger.InfoWithFields("album listing served from cache", map[string]interface{}{
			"count": len(albums),
		})
		return albums, nil
	}

	albums, err = p.client.FetchAlbums()
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(albumsKey, albums); err != nil {
		return nil, err
	}

	p.logger.InfoWithFields("album listing fetched", map[string]interface{}{
		"count": len(albums),
	})

	return albums, nil
}

// ListAlbumPhotos returns one album's photo metadata, cache-first under
// the "photos-{albumId}" key
func (p *Pipeline) ListAlbumPhotos(albumID int) ([]api.Photo, error) {
	key := photosKey(albumID)

	var photos []api.Photo
	hit, err := p.cache.Get(key, &photos)
	if err != nil {
		return nil, err
	}
	if hit {
		p.logger.InfoWithFields("photo listing served from cache", map[string]interface{}{
			"album_id": albumID,
			"count":    len(photos),
		})
		return photos, nil
	}

	photos, err = p.client.FetchAlbumPhotos(albumID)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(key, photos); err != nil {
		return nil, err
	}

	p.logger.InfoWithFields("photo listing fetched", map[string]interface{}{
		"album_id": albumID,
		"count":    len(photos),
	})

	return photos, nil
}

// DownloadPhoto downloads one photo into an album folder unless its
// completion marker is cached AND the file is still on disk. The file
// write and the cache write-back are synchronous: the marker is recorded
// only after the photo durably exists.
func (p *Pipeline) DownloadPhoto(photo api.Photo, albumFolder string) error {
	key := photoKey(photo.ID)

	var cached api.Photo
	hit, err := p.cache.Get(key, &cached)
	if err != nil {
		return err
	}
	if hit {
		if p.store.PhotoExists(albumFolder, photo.ID) {
			p.logger.InfoWithFields("photo already downloaded", map[string]interface{}{
				"photo_id":     photo.ID,
				"album_folder": albumFolder,
			})
			p.skipped++
			return nil
		}
		// Marker without a file: cache and filesystem diverged
		p.logger.WarnWithFields("cached photo missing on disk, re-downloading", map[string]interface{}{
			"photo_id":     photo.ID,
			"album_folder": albumFolder,
		})
	}

	data, err := p.client.DownloadPhoto(photo.URL)
	if err != nil {
		return err
	}

	// Album folder is created lazily, before the first photo write
	if err := p.store.EnsureAlbumDir(albumFolder); err != nil {
		return err
	}

	if err := p.store.SavePhoto(bytes.NewReader(data), albumFolder, photo.ID); err != nil {
		return err
	}

	if err := p.cache.Set(key, photo); err != nil {
		return err
	}

	p.logger.InfoWithFields("photo downloaded", map[string]interface{}{
		"photo_id":     photo.ID,
		"album_folder": albumFolder,
		"bytes":        len(data),
	})
	p.downloaded++

	return nil
}

// processAlbum lists an album's photos and downloads up to the per-album cap
func (p *Pipeline) processAlbum(album api.Album) error {
	folder := storage.FolderName(album.Title)
	if folder == "" {
		folder = fmt.Sprintf("album-%d", album.ID)
	}

	p.logger.InfoWithFields("processing album", map[string]interface{}{
		"album_id": album.ID,
		"title":    album.Title,
		"folder":   folder,
	})

	photos, err := p.ListAlbumPhotos(album.ID)
	if err != nil {
		return err
	}

	limit := p.cfg.Download.PhotosPerAlbum
	if len(photos) < limit {
		limit = len(photos)
	}

	for _, photo := range photos[:limit] {
		if err := p.DownloadPhoto(photo, folder); err != nil {
			return err
		}
		p.pacer.Pause()
	}

	return nil
}
