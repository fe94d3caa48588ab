// main.go
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"yt_view_extractor/infrastructure/cache"
	"yt_view_extractor/infrastructure/config"
	"yt_view_extractor/infrastructure/exporter"
	"yt_view_extractor/infrastructure/logger"
	"yt_view_extractor/infrastructure/provider"
	"yt_view_extractor/infrastructure/token_manager"
	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
	"yt_view_extractor/internal/core/usecases"
	"yt_view_extractor/internal/handler/cli"
	"yt_view_extractor/internal/handler/tui"
)

var version = "0.1.0"

const envFilePath = ".env"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(envFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	// Initialize Logger
	appLogger, err := logger.NewFileLogger(cfg.LogDir, "yt_view_extractor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	callCache, err := cache.NewTieredCache(cfg.CacheEntries, cfg.RedisURL, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize cache", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize cache: %v\n", err)
		return 1
	}
	defer func() {
		hits, misses := callCache.Stats()
		appLogger.Info(fmt.Sprintf("Cache hits %d, misses %d", hits, misses))
		if err := callCache.Close(); err != nil {
			appLogger.Error("Failed to close cache", err)
		}
	}()

	// Initialize Services
	tokenService := token_manager.NewTokenService(cfg.TokenFile)
	ttls := provider.TTLs{Channel: cfg.ChannelTTL, Listing: cfg.ListTTL}

	openYoutube := func(cred domain.Credential) ports.YoutubePort {
		yt := provider.NewYoutubeProvider(cred, tokenService, appLogger)
		return provider.NewCachedProvider(yt, callCache, cred.Fingerprint(), ttls, appLogger)
	}

	extractUseCase := usecases.NewExtractUseCase(openYoutube, appLogger)
	xlsxExporter := exporter.NewXLSXExporter()

	rootCmd := newRootCmd(tui.Dependencies{
		Extract:  extractUseCase,
		Exporter: xlsxExporter,
		Log:      appLogger,
		APIKey:   cfg.APIKey,
		OpenFile: browser.OpenFile,
	})
	rootCmd.AddCommand(cli.NewExtractCmd(cli.Dependencies{
		Extract:  extractUseCase,
		Exporter: xlsxExporter,
		Log:      appLogger,
		APIKey:   cfg.APIKey,
		OpenFile: browser.OpenFile,
	}))

	if err := rootCmd.Execute(); err != nil {
		appLogger.Error("Command failed", err)
		return 1
	}

	appLogger.Info("Application finished.")
	return 0
}

// newRootCmd starts the interactive TUI when no subcommand is given.
func newRootCmd(deps tui.Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ytx",
		Short:        "Extract YouTube video metadata for a period into a spreadsheet",
		Long:         "ytx collects titles, hashtags and view counts of the videos a set of channels,\nor a hashtag search, published in a month range and exports them to xlsx.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewAppModel(deps), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI program: %w", err)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate("ytx version {{.Version}}\n")

	return rootCmd
}
