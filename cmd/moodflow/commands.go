package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"moodflow/internal/insight"
	"moodflow/internal/mood"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRecordCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "record <mood> [note...]",
		Short: "Record a mood with an optional note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mood.Parse(args[0])
			if err != nil {
				return err
			}
			rec, err := e.app.RecordMood(cmd.Context(), m, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			meta := m.Meta()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s recorded at %s\n", meta.Emoji, meta.Label, rec.DateString)
			return nil
		},
	}
}

func newHistoryCmd(e *env) *cobra.Command {
	var (
		moodFlag string
		f        mood.HistoryFilter
		output   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded moods, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if moodFlag != "" {
				m, err := mood.Parse(moodFlag)
				if err != nil {
					return err
				}
				f.Mood = m
			}
			records := e.app.History(cmd.Context(), f)
			return writeRecords(cmd.OutOrStdout(), records, output)
		},
	}
	cmd.Flags().StringVar(&moodFlag, "mood", "", "only this mood")
	cmd.Flags().StringVar(&f.Tag, "tag", "", "only notes carrying this #tag")
	cmd.Flags().StringVar(&f.Query, "q", "", "substring match on the note")
	cmd.Flags().IntVar(&f.Limit, "limit", mood.DefaultHistoryLimit, "maximum records")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "text, json or yaml")
	return cmd
}

func writeRecords(w io.Writer, records []mood.Record, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(records)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range records {
			meta := r.Mood.Meta()
			fmt.Fprintf(tw, "%s\t%s %s\t%s\n", r.DateString, meta.Emoji, meta.Label, r.Note)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func newStatsCmd(e *env) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the streak and mood distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 || days > mood.MaxStatsDays {
				return fmt.Errorf("--days must be between 1 and %d", mood.MaxStatsDays)
			}
			s := e.app.Stats(cmd.Context(), days)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "streak: %d day(s)\n", s.Streak)
			fmt.Fprintf(w, "last %d days: %d record(s)\n", s.WindowDays, s.WindowCount)
			for _, c := range s.Chart {
				fmt.Fprintf(w, "  %-8s %s %d\n", c.Mood, c.Label, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "window size in days (default INSIGHT_WINDOW_DAYS)")
	return cmd
}

func newInsightCmd(e *env) *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Ask the model for a summary of recent moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			res, err := e.app.FetchRecentInsight(ctx)
			if err != nil {
				if errors.Is(err, insight.ErrNoCredential) {
					return errors.New("no API key stored, run `moodflow key set <key>` first")
				}
				fmt.Fprintln(w, res.Text)
				var ex *insight.ExhaustedError
				if errors.As(err, &ex) && len(ex.DiagnosticModels) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "available models: %s\n", strings.Join(ex.DiagnosticModels, ", "))
				}
				return err
			}

			if !reveal {
				fmt.Fprintln(w, res.Text)
				return nil
			}
			shown := 0
			err = insight.Play(ctx, res.Text, e.cfg.RevealInterval, func(prefix string) error {
				_, err := io.WriteString(w, prefix[shown:])
				shown = len(prefix)
				return err
			})
			fmt.Fprintln(w)
			return err
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the text progressively")
	return cmd
}

func newKeyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key>",
			Short: "Store the API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.SetCredential(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.app.SetCredential(cmd.Context(), ""); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key cleared")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether an API key is stored",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := e.app.Credential(cmd.Context()); ok {
					fmt.Fprintln(cmd.OutOrStdout(), "API key: set")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "API key: not set")
				}
				return nil
			},
		},
	)
	return cmd
}
