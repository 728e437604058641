package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/interview-assessor/internal/models"
	"alfredoptarigan/interview-assessor/internal/services"
)

var questionsRole string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate the six interview questions for a role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		generator, err := services.NewGenerator(cmd.Context(), cfg.GenerationConfig(), log)
		if err != nil {
			return err
		}

		set := services.NewInterviewService(generator, log).GenerateQuestions(cmd.Context(), questionsRole)
		log.Info("questions ready", zap.String("source", string(set.Source)), zap.Int("attempts", set.Attempts))

		return writeJSON(cmd.OutOrStdout(), models.GenerateQuestionsResponse{Questions: set.Questions})
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [FILE|-]",
	Short: "Compute the weighted final summary from a final-summary request JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var req models.FinalSummaryRequest
		if err := json.NewDecoder(in).Decode(&req); err != nil {
			return fmt.Errorf("decode summary request: %w", err)
		}

		return writeJSON(cmd.OutOrStdout(), services.Summarize(req.CandidateName, req.Answers))
	},
}

func init() {
	questionsCmd.Flags().StringVarP(&questionsRole, "role", "r", services.DefaultRole, "role the questions are written for")
	rootCmd.AddCommand(questionsCmd, summarizeCmd)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
