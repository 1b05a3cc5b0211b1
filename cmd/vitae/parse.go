package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/vitae"
	"github.com/tsawler/vitae/internal/config"
	"github.com/tsawler/vitae/internal/logging"
	"github.com/tsawler/vitae/model"
	"github.com/tsawler/vitae/pdfsource"
	"github.com/tsawler/vitae/scoring"
)

// fileResult is the output for one input file.
type fileResult struct {
	File     string              `json:"file" yaml:"file"`
	Resume   *model.Resume       `json:"resume,omitempty" yaml:"resume,omitempty"`
	Privacy  *model.PrivacyFlags `json:"privacy,omitempty" yaml:"privacy,omitempty"`
	Warnings []vitae.Warning     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
}

type parseFlags struct {
	format   string
	validate bool
	explain  bool
}

func newParseCmd(e *env) *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse resume PDFs and print the extracted data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := e.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("no-privacy-filter") {
				noFilter, _ := cmd.Flags().GetBool("no-privacy-filter")
				cfg.Parse.PrivacyFilter = !noFilter
			}

			return runParse(cmd.Context(), cmd.OutOrStdout(), args, cfg, flags, logger)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&flags.validate, "validate", false, "check every result against the output JSON schema")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "log the candidate scores behind every extracted field")
	cmd.Flags().Bool("no-privacy-filter", false, "keep consent statements in the text used for extraction")
	cmd.Flags().IntP("jobs", "J", 0, "number of files parsed concurrently (default from config)")
	cmd.Flags().Bool("keep-page-furniture", false, "keep running headers, footers and page numbers")
	cmd.Flags().Bool("ignore-embedded", false, "parse the page text even when an embedded resume is present")

	e.v.BindPFlag("parse.jobs", cmd.Flags().Lookup("jobs"))
	e.v.BindPFlag("parse.keep-page-furniture", cmd.Flags().Lookup("keep-page-furniture"))
	e.v.BindPFlag("parse.ignore-embedded", cmd.Flags().Lookup("ignore-embedded"))

	return cmd
}

func runParse(ctx context.Context, out io.Writer, files []string, cfg *config.Config, flags parseFlags, logger *zap.Logger) error {
	if flags.format != "json" && flags.format != "yaml" {
		return fmt.Errorf("unknown format %q", flags.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	configure := pipeline(cfg.Parse)
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parse.Jobs)

	for i, file := range files {
		g.Go(func() error {
			results[i] = parseFile(ctx, file, configure, flags, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}
	if err := encode(out, flags.format, payload); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func parseFile(ctx context.Context, file string, configure func(*vitae.Extractor) *vitae.Extractor, flags parseFlags, logger *zap.Logger) fileResult {
	log := logger.With(zap.String("file", file))
	if f := pdfsource.FormatFromName(file); f != pdfsource.PDF && f != pdfsource.Unknown {
		log.Warn("file name suggests a non-PDF document", zap.Stringer("format", f))
	}

	ext := configure(vitae.Open(file).WithContext(ctx).WithLogger(log))
	if flags.explain {
		ext = ext.WithTrace(explainTrace(log))
	}

	result, warnings, err := ext.Parse()
	if err == nil && flags.validate {
		err = model.Validate(result)
	}
	if err != nil {
		log.Error("parsing failed", zap.Error(err))
		return fileResult{File: file, Error: err.Error()}
	}

	if len(warnings) > 0 {
		log.Warn("parsed with warnings", zap.String("warnings", vitae.FormatWarnings(warnings)))
	}
	log.Debug("parsed", zap.String("name", result.Resume.Profile.Name))

	return fileResult{
		File:     file,
		Resume:   &result.Resume,
		Privacy:  &result.Privacy,
		Warnings: warnings,
	}
}

// explainTrace logs each field selection with its candidate score table.
func explainTrace(logger *zap.Logger) func(string, scoring.Result) {
	return func(field string, r scoring.Result) {
		rows := make([]string, 0, len(r.Scores))
		for i, s := range r.Scores {
			marker := " "
			if i == r.Index {
				marker = "*"
			}
			rows = append(rows, fmt.Sprintf("%s %+d [%s] %s", marker, s.Score, strings.Join(s.Matched, ","), logging.Truncate(s.Text, 50)))
		}

		logger.Info("scored field",
			zap.String("field", field),
			zap.String("value", logging.Truncate(r.Value, 80)),
			zap.Int("score", r.Score),
			zap.Strings("candidates", rows),
		)
	}
}

func encode(out io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}
