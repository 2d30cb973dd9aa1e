package main

import (
	"time"

	"github.com/spf13/cobra"

	"albumdl/pkg/api"
	"albumdl/pkg/cache"
	"albumdl/pkg/config"
	"albumdl/pkg/logger"
	"albumdl/pkg/pipeline"
	"albumdl/pkg/ratelimit"
	"albumdl/pkg/storage"
)

var (
	// Fetch command flags
	outputDir      string
	baseURL        string
	cacheDir       string
	photosPerAlbum int
	requestDelay   time.Duration
	maxAttempts    int
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download photos from every album",
	Long: `Download a bounded number of photos from every album the upstream
service lists.

Albums are processed one at a time, photos one at a time within an album,
with a fixed pause between requests. Results are cached on disk: a second
run with a warm cache performs no network requests and rewrites nothing.`,
	Example: `  # Download with default settings (5 photos per album)
  albumdl fetch

  # Download into a specific directory with a larger per-album cap
  albumdl fetch --output ./photos --photos-per-album 10

  # Point at a different upstream and slow the pacing down
  albumdl fetch --base-url https://example.test --request-delay 5s`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	// Local flags for fetch command
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads (default: photos)")
	fetchCmd.Flags().StringVar(&baseURL, "base-url", "", "upstream API base URL")
	fetchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persistent cache directory")
	fetchCmd.Flags().IntVar(&photosPerAlbum, "photos-per-album", 0, "maximum photos downloaded per album")
	fetchCmd.Flags().DurationVar(&requestDelay, "request-delay", 0, "pause after each photo and album")
	fetchCmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "total fetch attempts before giving up")
}

func runFetch(cmd *cobra.Command, args []string) error {
	// Build command line flags map from flags that were actually set
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("output") {
		flags["output"] = outputDir
	}
	if cmd.Flags().Changed("base-url") {
		flags["base-url"] = baseURL
	}
	if cmd.Flags().Changed("cache-dir") {
		flags["cache-dir"] = cacheDir
	}
	if cmd.Flags().Changed("photos-per-album") {
		flags["photos-per-album"] = photosPerAlbum
	}
	if cmd.Flags().Changed("request-delay") {
		flags["request-delay"] = requestDelay
	}
	if cmd.Flags().Changed("max-attempts") {
		flags["max-attempts"] = maxAttempts
	}
	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}

	// Initialize logger; log files are flushed and closed on exit,
	// including error paths
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return err
	}
	defer logger.Close()
	log := logger.GetLogger()

	client := api.NewClient(&cfg.API, log)

	store, err := cache.New(cfg.Cache.Directory, cfg.Cache.Namespace, cfg.Cache.TTL, log)
	if err != nil {
		return err
	}

	mgr, err := storage.NewManager(cfg.Output.BaseDirectory)
	if err != nil {
		return err
	}

	pacer := ratelimit.NewFixedDelay(cfg.Download.RequestDelay)

	p := pipeline.New(cfg, client, store, mgr, pacer, log)
	if err := p.Run(); err != nil {
		log.WithError(err).Error("download run failed")
		return err
	}

	return nil
}
