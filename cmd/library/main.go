// Package main provides the library command that keeps a CSV snapshot
// of the user's Spotify library on disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/spotify"
	"github.com/alessandroseni/spotisync/internal/store"
)

func main() {
	// 1. Define Command-Line Flags
	// ----------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	force := flag.Bool("force", false, "Refresh even when the snapshot is still fresh")
	summaryOnly := flag.Bool("summary", false, "Print snapshot stats without refreshing")

	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	st := store.NewStore(cfg.Store.DataDir)

	if *summaryOnly {
		printSnapshot(st, log)

		return
	}

	// 2. Staleness Check
	// ------------------
	stats, err := st.Stats()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to read snapshot: %v", err))
		os.Exit(1)
	}

	if stats.DataExists && !st.IsStale(cfg.Store.StaleAfter()) && !*force {
		log.Info(fmt.Sprintf("✅ Snapshot is fresh (updated %s). Use -force to refresh anyway.",
			stats.LastUpdated.Format("2006-01-02")))
		printSnapshot(st, log)

		return
	}

	// 3. Refresh
	// ----------
	log.Info("🚀 Starting library refresh")

	startTime := time.Now()

	auth, err := spotify.NewAuthenticator(cfg.Spotify, spotify.LibraryScopes, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	httpClient, err := auth.Client()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Spotify authentication failed: %v", err))
		os.Exit(1)
	}

	client := spotify.NewClient(httpClient, log)

	result, err := store.NewRefresher(client, st, log).RefreshAll()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Refresh failed: %v", err))
		os.Exit(1)
	}

	// 4. Final Report
	// ---------------
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Library Refresh Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Tracks Saved: %d\n", result.Tracks)
	fmt.Printf("Albums Saved: %d\n", result.Albums)
	fmt.Printf("Artists Saved: %d\n", result.Artists)
	fmt.Printf("Total Duration: %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")
}

// printSnapshot reports what is on disk: row counts, manifest status
// and the genre summary.
func printSnapshot(st *store.Store, log *logger.Logger) {
	stats, err := st.Stats()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to read snapshot: %v", err))
		os.Exit(1)
	}

	if !stats.DataExists {
		log.Warn("⚠️  No snapshot found. Run the library command to fetch one.")

		return
	}

	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📚 Library Snapshot\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Tracks: %d\n", stats.Tracks)
	fmt.Printf("Albums: %d\n", stats.Albums)
	fmt.Printf("Artists: %d\n", stats.Artists)

	if !stats.LastUpdated.IsZero() {
		fmt.Printf("Last Updated: %s (%s ago)\n",
			stats.LastUpdated.Format("2006-01-02 15:04"),
			time.Since(stats.LastUpdated).Round(time.Hour))
	}

	if _, err := st.VerifyManifest(); err != nil {
		log.Warn(fmt.Sprintf("⚠️  Manifest check failed: %v", err))
	} else {
		fmt.Println("Manifest: ✅ verified")
	}

	genres, err := st.GenreSummary()
	if err != nil {
		log.Warn(fmt.Sprintf("⚠️  Could not summarize genres: %v", err))
	} else if len(genres) > 0 {
		fmt.Println("\nTop Genres:")

		limit := 10
		if len(genres) < limit {
			limit = len(genres)
		}

		for _, genre := range genres[:limit] {
			fmt.Printf("  - %s (%d)\n", genre.Genre, genre.Count)
		}
	}

	fmt.Println("------------------------------------------------")
}
