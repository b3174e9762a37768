package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mmynk/secretsanta/internal/draw"
	"github.com/mmynk/secretsanta/internal/export"
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/sharecode"
)

const defaultBaseURL = "http://localhost:8080/"

type drawOptions struct {
	file     string
	title    string
	date     string
	budget   string
	attempts int
	seed     uint64
	shared   bool
	baseURL  string
	copy     bool
	format   string
}

func newDrawCmd() *cobra.Command {
	opts := drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw assignments for a roster file",
		Example: `  santa draw -f family.yaml --title "Family 2024" --date 2024-12-24 --budget 30
  santa draw -f office.yaml --format link --shared --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "roster YAML file (required)")
	flags.StringVar(&opts.title, "title", "", "event title (default \"Secret Santa\")")
	flags.StringVar(&opts.date, "date", "", "exchange date, YYYY-MM-DD")
	flags.StringVar(&opts.budget, "budget", "", "spending limit, e.g. 25")
	flags.IntVar(&opts.attempts, "attempts", draw.DefaultMaxAttempts, "maximum shuffles before giving up")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible draw (0 picks one)")
	flags.BoolVar(&opts.shared, "shared", false, "make the token a participant view that cannot draw again")
	flags.StringVar(&opts.baseURL, "base-url", defaultBaseURL, "page that share links open")
	flags.BoolVar(&opts.copy, "copy", false, "copy the share link to the clipboard")
	flags.StringVar(&opts.format, "format", "text", "output format: text, token, link or csv")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runDraw(out io.Writer, opts drawOptions) error {
	switch opts.format {
	case "text", "token", "link", "csv":
	default:
		return fmt.Errorf("unknown format %q (want text, token, link or csv)", opts.format)
	}
	if opts.date != "" {
		if _, err := time.Parse(time.DateOnly, opts.date); err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
	}

	r, err := loadRoster(opts.file)
	if err != nil {
		return err
	}

	genOpts := []draw.Option{draw.WithMaxAttempts(opts.attempts)}
	if opts.seed != 0 {
		genOpts = append(genOpts, draw.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}
	result, err := draw.NewGenerator(genOpts...).GenerateWithStats(r.names(), r.History)
	if err != nil {
		return err
	}
	slog.Debug("Draw complete", "participants", len(result.Pairs), "attempts", result.Attempts)

	record := models.EventRecord{
		Title:     opts.title,
		Date:      opts.date,
		MaxAmount: models.Budget(opts.budget),
		Results:   result.Pairs,
	}

	var token, link string
	if opts.format == "token" || opts.format == "link" || opts.copy {
		token, err = sharecode.Encode(record, opts.shared)
		if err != nil {
			return err
		}
		link, err = sharecode.Link(opts.baseURL, token)
		if err != nil {
			return err
		}
	}

	if opts.copy {
		if err := clipboard.WriteAll(link); err != nil {
			slog.Warn("Could not copy link to clipboard", "error", err)
		} else {
			slog.Info("Share link copied to clipboard")
		}
	}

	return writeRecord(out, record, opts.format, token, link)
}

func writeRecord(out io.Writer, record models.EventRecord, format, token, link string) error {
	var err error
	switch format {
	case "token":
		_, err = fmt.Fprintln(out, token)
	case "link":
		_, err = fmt.Fprintln(out, link)
	case "csv":
		err = export.WriteCSV(out, record)
	default:
		_, err = io.WriteString(out, export.Text(record))
	}
	return err
}
