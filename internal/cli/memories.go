package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newMemoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "Shared notes and special dates",
	}

	cmd.AddCommand(newNoteCmd())
	cmd.AddCommand(newDateCmd())

	return cmd
}

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Shared note commands",
	}

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteRemoveCmd())

	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a shared note",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			req := map[string]string{"title": title, "body": body}
			var result Note

			if err := client.Post("/api/v1/memories/notes", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title (required)")
	cmd.Flags().StringVar(&body, "body", "", "Note body")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shared notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Note

			if err := client.Get("/api/v1/memories/notes", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a shared note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/memories/notes/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Note deleted.")
			return nil
		},
	}
}

func newDateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Special date commands",
	}

	cmd.AddCommand(newDateAddCmd())
	cmd.AddCommand(newDateListCmd())
	cmd.AddCommand(newDateRemoveCmd())

	return cmd
}

func newDateAddCmd() *cobra.Command {
	var label, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a special date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" || date == "" {
				return fmt.Errorf("--label and --date are required")
			}

			parsed, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}

			req := map[string]any{"label": label, "date": parsed}
			var result SpecialDate

			if err := client.Post("/api/v1/memories/dates", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "What the date marks (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newDateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List special dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []SpecialDate

			if err := client.Get("/api/v1/memories/dates", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <date-id>",
		Short: "Delete a special date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/memories/dates/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Special date deleted.")
			return nil
		},
	}
}
