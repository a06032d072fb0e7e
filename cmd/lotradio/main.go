// Package main provides the lotradio command that renders the station
// page, extracts the weekly schedule, and analyzes it against the
// user's Spotify listening profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/alessandroseni/spotisync/internal/analysis"
	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
	"github.com/alessandroseni/spotisync/internal/models"
	"github.com/alessandroseni/spotisync/internal/profile"
	"github.com/alessandroseni/spotisync/internal/renderer"
	"github.com/alessandroseni/spotisync/internal/report"
	"github.com/alessandroseni/spotisync/internal/schedule"
	"github.com/alessandroseni/spotisync/internal/spotify"
)

func main() {
	// 1. Define Command-Line Flags
	// ----------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	day := flag.String("day", "", "Only display one weekday (e.g. friday)")
	localFile := flag.String("local", "", "Parse a saved schedule page instead of rendering the live site")
	skipAnalysis := flag.Bool("skip-analysis", false, "Skip Spotify profile collection and LLM analysis")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *localFile != "" {
		cfg.Station.LocalFile = *localFile
	}

	if *verbose {
		cfg.Logging.Level = "debug"
	}

	// Initialize Logger
	runID := uuid.NewString()[:8]
	log := logger.NewLogger(cfg.Logging.Level).WithRun(runID)

	log.Info("🚀 Starting Lot Radio schedule pipeline")

	if cfg.Station.IsLocalFile() {
		log.Info(fmt.Sprintf("📍 Source: %s (local file)", cfg.Station.LocalFile))
	} else {
		log.Info(fmt.Sprintf("📍 Source: %s", cfg.Station.URL))
	}

	startTime := time.Now()

	// 2. Rendering
	// ------------
	log.Info("Phase 1: Rendering station page...")

	page, err := renderer.NewRenderer(cfg.Station, log).Render(context.Background())
	if err != nil {
		log.Error(fmt.Sprintf("❌ Render failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Rendered %d bytes in %v", len(page.HTML), time.Since(startTime)))

	// 3. Extraction
	// -------------
	log.Info("Phase 2: Extracting schedule...")

	shows, stats, err := schedule.NewPipeline(cfg.Extraction, log).Run(page.Text, page.Rows)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Extraction failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Extracted %d shows", len(shows)))

	// 4. Schedule Report
	// ------------------
	week := schedule.BuildView(shows, "")

	view := week
	if *day != "" {
		view = schedule.BuildView(shows, *day)
		if len(view.Days) == 0 {
			log.Warn(fmt.Sprintf("⚠️  No shows found for %s", schedule.CapitalizeDay(*day)))
		}
	}

	fmt.Println(report.RenderSchedule(view))

	if cfg.Output.ScheduleFile != "" {
		writeScheduleFile(cfg.Output.ScheduleFile, week, log)
	}

	summary := report.NewSummary(week)
	summary.RunID = runID
	summary.StructuredRows = stats.StructuredShows
	summary.SkippedRows = stats.SkippedRows
	summary.TextParseUsed = stats.TextParseUsed

	// 5. Profile & Analysis
	// ---------------------
	if !*skipAnalysis {
		if listening := collectProfile(cfg, log); listening != nil {
			fmt.Println(report.RenderProfile(listening))

			summary.ProfileArtists = listening.TotalArtists
			summary.SourceCounts = listening.SourceCounts

			if verdict := runAnalysis(cfg, listening, &week, log); verdict != nil {
				fmt.Println(report.RenderAnalysis(verdict))

				summary.AnalysisModel = verdict.Model
				summary.AnalysisTokens = verdict.TokensUsed
			}
		}
	}

	// 6. Final Report
	// ---------------
	log.Info("✨ Pipeline Complete!")

	summary.Duration = time.Since(startTime)
	fmt.Println(summary.Render())
}

// collectProfile builds the listening profile from the Spotify library.
// Failures are not fatal: the schedule report has already printed.
func collectProfile(cfg *config.Config, log *logger.Logger) *models.ListeningProfile {
	auth, err := spotify.NewAuthenticator(cfg.Spotify, spotify.ProfileScopes, log)
	if err != nil {
		log.Warn(fmt.Sprintf("⚠️  Skipping Spotify profile: %v", err))

		return nil
	}

	httpClient, err := auth.Client()
	if err != nil {
		log.Warn(fmt.Sprintf("⚠️  Spotify authentication failed: %v", err))

		return nil
	}

	client := spotify.NewClient(httpClient, log)

	artists, err := profile.NewCollector(client, log).Collect()
	if err != nil {
		log.Warn(fmt.Sprintf("⚠️  Profile collection failed: %v", err))

		return nil
	}

	return profile.BuildProfile(artists)
}

// runAnalysis asks the configured model for a compatibility verdict.
// The whole week is analyzed even when the display was day-filtered.
func runAnalysis(cfg *config.Config, listening *models.ListeningProfile, week *models.Schedule, log *logger.Logger) *models.Analysis {
	if !analysisKeyPresent(cfg.Analysis) {
		log.Warn(fmt.Sprintf("⚠️  Skipping analysis: no API key configured for provider %q", cfg.Analysis.Provider))

		return nil
	}

	verdict, err := analysis.NewAnalyzer(cfg.Analysis, log).Analyze(listening, week)
	if err != nil {
		log.Warn(fmt.Sprintf("⚠️  Analysis failed: %v", err))

		return nil
	}

	return verdict
}

func analysisKeyPresent(cfg config.AnalysisConfig) bool {
	switch cfg.Provider {
	case analysis.ProviderAnthropic:
		return cfg.AnthropicAPIKey != ""
	default:
		return cfg.OpenAIAPIKey != ""
	}
}

// writeScheduleFile writes the markdown artifact, validating it first.
// Validation problems are reported but never block the write.
func writeScheduleFile(path string, week models.Schedule, log *logger.Logger) {
	doc := report.ScheduleMarkdown(week)

	result := report.ValidateSchedule(doc)
	if !result.IsValid {
		log.Warn(fmt.Sprintf("⚠️  Schedule document has problems: %s", result))
		fmt.Println(result.RenderErrors())
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		log.Warn(fmt.Sprintf("⚠️  Failed to write %s: %v", path, err))

		return
	}

	log.Info(fmt.Sprintf("💾 Schedule written to %s (%s)", path, result))
}
