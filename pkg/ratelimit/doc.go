// Package ratelimit provides inter-request pacing for the album downloader.
//
// Processing is strictly sequential, so there is no token bucket or
// sliding window here: the upstream is protected by a fixed pause
// inserted after each photo download and after each album.
//
// Usage:
//
//	pacer := ratelimit.NewFixedDelay(3 * time.Second)
//
//	for _, photo := range photos {
//	    download(photo)
//	    pacer.Pause()
//	}
package ratelimit
