// Package cli holds the headless commands.
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yt_view_extractor/infrastructure/exporter"
	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
	"yt_view_extractor/internal/core/usecases"
)

// Dependencies are the services the extract command runs against.
type Dependencies struct {
	Extract  usecases.ExtractUseCase
	Exporter ports.ExporterPort
	Log      ports.LoggerPort
	// APIKey is used when --api-key is not given.
	APIKey string
	// OpenFile opens a written spreadsheet with the desktop handler.
	OpenFile func(path string) error
}

type extractOptions struct {
	apiKey       string
	channels     []string
	hashtag      string
	start        string
	end          string
	keyword      string
	hashtags     string
	uploadPolicy string
	out          string
	open         bool

	// uploadPolicySet records an explicit --upload-date-policy
	uploadPolicySet bool
}

// NewExtractCmd creates the extract subcommand.
func NewExtractCmd(deps Dependencies) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract video metadata to a spreadsheet",
		Long: "Collect the videos of one or more channels, or of a hashtag search, published in a\n" +
			"MMYYYY to MMYYYY window and write them to an xlsx file.",
		Example: "  ytx extract --channel UC_x5XG1OV2P6uZZ5FSM9Ttw --start 012024 --end 032024 --hashtags '#go'\n" +
			"  ytx extract --hashtag '#golang' --start 012024 --end 012024 --open",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, deps, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "YouTube Data API key (default $YTX_API_KEY)")
	cmd.Flags().StringSliceVarP(&opts.channels, "channel", "c", nil, "Channel ID to read uploads from (repeatable)")
	cmd.Flags().StringVar(&opts.hashtag, "hashtag", "", "Search query for hashtag mode, e.g. #AI")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "First month of the window, MMYYYY")
	cmd.Flags().StringVarP(&opts.end, "end", "e", "", "Last month of the window, MMYYYY")
	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "Keep only videos whose title or description contains this text")
	cmd.Flags().StringVar(&opts.hashtags, "hashtags", "", "Keep only videos carrying one of these hashtags, comma separated")
	cmd.Flags().StringVar(&opts.uploadPolicy, "upload-date-policy", domain.PolicyMonthIndependent.String(), "Date matching for channel uploads: month-independent or chronological")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default youtube_data_{start}_{end}.xlsx)")
	cmd.Flags().BoolVar(&opts.open, "open", false, "Open the spreadsheet once written")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	cmd.MarkFlagsMutuallyExclusive("channel", "hashtag")
	cmd.MarkFlagsOneRequired("channel", "hashtag")

	return cmd
}

func buildRequest(deps Dependencies, opts *extractOptions) (domain.ExtractRequest, error) {
	window, err := domain.ParseDateWindow(opts.start, opts.end)
	if err != nil {
		return domain.ExtractRequest{}, err
	}

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = deps.APIKey
	}

	req := domain.ExtractRequest{
		Credential: domain.Credential{APIKey: apiKey},
		Window:     window,
	}

	if opts.hashtag != "" {
		if opts.keyword != "" || opts.hashtags != "" {
			return domain.ExtractRequest{}, fmt.Errorf("%w: --keyword and --hashtags only apply to channel uploads", domain.ErrInvalidRequest)
		}
		if opts.uploadPolicySet {
			return domain.ExtractRequest{}, fmt.Errorf("%w: --upload-date-policy only applies to channel uploads", domain.ErrInvalidRequest)
		}
		req.Mode = domain.ModeHashtagSearch
		req.Query = opts.hashtag
		return req, nil
	}

	policy, err := domain.ParseDatePolicy(opts.uploadPolicy)
	if err != nil {
		return domain.ExtractRequest{}, err
	}

	req.Mode = domain.ModeChannelUploads
	req.ChannelIDs = opts.channels
	req.Filter = domain.NewFilterSpec(opts.keyword, opts.hashtags)
	req.UploadPolicy = policy

	return req, nil
}

func runExtract(cmd *cobra.Command, deps Dependencies, opts *extractOptions) error {
	opts.uploadPolicySet = cmd.Flags().Changed("upload-date-policy")

	req, err := buildRequest(deps, opts)
	if err != nil {
		return err
	}

	report, err := deps.Extract.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	printWarnings(cmd.ErrOrStderr(), report.Warnings)
	printSources(cmd.OutOrStdout(), report.Sources)

	if !report.HasData() {
		fmt.Fprintln(cmd.OutOrStdout(), "No data found for the selected period.")
		return nil
	}

	path := opts.out
	if path == "" {
		path = exporter.DefaultFileName(req.Window)
	}

	if err := deps.Exporter.ExportFile(path, report.Records); err != nil {
		deps.Log.Error("error while exporting "+path, err)
		return fmt.Errorf("export failed: %w", err)
	}

	deps.Log.Info(fmt.Sprintf("[%s] Exported %d rows to %s", report.RunID, len(report.Records), path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(report.Records), path)

	if opts.open && deps.OpenFile != nil {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if err := deps.OpenFile(abs); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open %s: %v\n", abs, err)
		}
	}

	return nil
}

func printWarnings(w io.Writer, warnings []domain.Warning) {
	for _, warning := range warnings {
		line := "warning: " + warning.String()
		if warning.Kind == domain.WarningQuotaExceeded {
			line += " (daily quota may be exhausted)"
		}
		fmt.Fprintln(w, line)
	}
}

func printSources(w io.Writer, sources []domain.SourceSummary) {
	for _, source := range sources {
		name := source.Name
		if name == "" {
			name = source.Source
		}

		status := fmt.Sprintf("%d rows", source.Rows)
		if source.Failed {
			status = "failed"
		}

		fmt.Fprintf(w, "%-30s %s\n", strings.TrimSpace(name), status)
	}
}
