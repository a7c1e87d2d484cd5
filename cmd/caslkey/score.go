package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/internal/validation"
)

// scoreFile is the YAML accepted by the score command. Only the signals the
// scoring rules read are taken from verification.
type scoreFile struct {
	Form         guest.FormData `yaml:"form"`
	Verification struct {
		ReviewCount int  `yaml:"reviewCount"`
		IDVerified  bool `yaml:"idVerified"`
	} `yaml:"verification"`
}

func scoreCmd() *cobra.Command {
	var (
		file  string
		today string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the trust score for a filled-in application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if today != "" {
				d, ok := guest.ParseDate(today)
				if !ok {
					return fmt.Errorf("--today must be YYYY-MM-DD, got %q", today)
				}
				day = d
			}
			in, err := readScoreFile(file)
			if err != nil {
				return err
			}
			return printScore(cmd.OutOrStdout(), in, day)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML application file")
	cmd.Flags().StringVar(&today, "today", "", "evaluation date (YYYY-MM-DD), defaults to now")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readScoreFile(path string) (scoreFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scoreFile{}, fmt.Errorf("read application: %w", err)
	}
	in := scoreFile{Form: guest.NewFormData()}
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return scoreFile{}, fmt.Errorf("parse application: %w", err)
	}
	return in, nil
}

func printScore(out io.Writer, in scoreFile, today time.Time) error {
	var state guest.VerificationState
	if in.Verification.ReviewCount > 0 {
		state.PlatformData = &caslapi.PlatformData{ReviewCount: in.Verification.ReviewCount}
	}
	state.IDVerification.Verified = in.Verification.IDVerified

	result := trust.CalculateScore(in.Form, state, today)

	fmt.Fprintf(out, "Score:       %d\n", result.Score)
	fmt.Fprintf(out, "Trust level: %s (%s)\n", trust.BadgeLabel(result.Level), trust.ScoreRange(result.Score))
	fmt.Fprintln(out, "Adjustments:")
	if len(result.Adjustments) == 0 {
		fmt.Fprintln(out, "  No deductions applied.")
	}
	for _, a := range result.Adjustments {
		fmt.Fprintf(out, "  %+d  %s\n", a.Points, a.Reason)
	}
	fmt.Fprintf(out, "Message:     %s\n", trust.ResultMessage(result.Level))

	// Identification needs live verification, so only later steps are checked.
	invalid := 0
	for _, step := range guest.Steps()[1:] {
		invalid += len(validation.ValidateStep(step, in.Form, state, ""))
	}
	if invalid > 0 {
		fmt.Fprintf(out, "Warning: %d answers are missing or invalid\n", invalid)
	}
	return nil
}
