// Package main provides the playlist-sync command that mirrors the
// user's liked songs into a target playlist.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/spotify"
)

func main() {
	// 1. Define Command-Line Flags
	// ----------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	playlist := flag.String("playlist", "", "Target playlist ID (overrides config and PLAYLIST_ID)")
	dryRun := flag.Bool("dry-run", false, "Report the plan without modifying the playlist")

	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	playlistID := *playlist
	if playlistID == "" {
		playlistID = cfg.Spotify.PlaylistID
	}

	if playlistID == "" {
		log.Error("Please provide a playlist with -playlist, spotify.playlist_id or PLAYLIST_ID")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Info("🚀 Starting playlist sync")
	log.Info(fmt.Sprintf("🎯 Target playlist: %s", playlistID))

	if *dryRun {
		log.Info("🔍 Dry run: no changes will be made")
	}

	startTime := time.Now()

	// 2. Authentication
	// -----------------
	auth, err := spotify.NewAuthenticator(cfg.Spotify, spotify.SyncScopes, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	httpClient, err := auth.Client()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Spotify authentication failed: %v", err))
		os.Exit(1)
	}

	// 3. Sync
	// -------
	client := spotify.NewClient(httpClient, log)

	result, err := spotify.NewSyncer(client, *dryRun, log).Sync(playlistID)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Sync failed: %v", err))
		os.Exit(1)
	}

	// 4. Final Report
	// ---------------
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Playlist Sync Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Playlist: %s\n", result.PlaylistName)
	fmt.Printf("Liked Tracks: %d\n", result.LikedTracks)
	fmt.Printf("Tracks Removed: %d\n", result.TracksRemoved)
	fmt.Printf("Tracks Added: %d\n", result.TracksAdded)
	fmt.Printf("Total Duration: %v\n", time.Since(startTime))

	if result.DryRun {
		fmt.Println("⚠️  Dry run: nothing was modified")
	}

	fmt.Println("------------------------------------------------")
}
