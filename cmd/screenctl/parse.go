package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/interview-assessor/internal/models"
	"alfredoptarigan/interview-assessor/internal/services"
)

var parseConcurrency int

var parseCmd = &cobra.Command{
	Use:   "parse-resume FILE...",
	Short: "Extract contact information from PDF or DOCX resumes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		svc := services.NewResumeService(services.NewDocumentParserService(), log)
		return parseResumes(cmd.OutOrStdout(), svc, log, args, parseConcurrency)
	},
}

func init() {
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 4, "number of files parsed in parallel")
	rootCmd.AddCommand(parseCmd)
}

type parseOutcome struct {
	File   string                      `json:"file"`
	Result *models.ParseResumeResponse `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

// parseResumes parses every path and writes one JSON line per file, in argument
// order. Every file is attempted; the first failure is returned once all lines are written.
func parseResumes(out io.Writer, svc services.ResumeService, log *zap.Logger, paths []string, concurrency int) error {
	outcomes := make([]parseOutcome, len(paths))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			var err error
			outcomes[i], err = parseOne(svc, path)
			return err
		})
	}
	waitErr := g.Wait()

	enc := json.NewEncoder(out)
	successCount, failCount := 0, 0
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			failCount++
		} else {
			successCount++
		}
		if err := enc.Encode(outcome); err != nil {
			return fmt.Errorf("write result for %s: %w", outcome.File, err)
		}
	}

	log.Info("parse summary", zap.Int("successful", successCount), zap.Int("failed", failCount))

	if waitErr != nil {
		return fmt.Errorf("%d of %d files failed to parse: %w", failCount, len(paths), waitErr)
	}
	return nil
}

func parseOne(svc services.ResumeService, path string) (parseOutcome, error) {
	outcome := parseOutcome{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = err.Error()
		return outcome, err
	}

	result, err := svc.ParseResume(filepath.Base(path), data)
	if err != nil {
		outcome.Error = err.Error()
		return outcome, fmt.Errorf("%s: %w", path, err)
	}

	outcome.Result = result
	return outcome, nil
}
