package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the local session code",
	}

	cmd.AddCommand(newSessionNewCmd())
	cmd.AddCommand(newSessionShowCmd())

	return cmd
}

func newSessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate and store a fresh session code",
		Long: `Generates a new random session code and stores it locally.

The session code is the only credential: every point created with it belongs
to it, so losing the code means losing access to those points.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := uuid.NewString()
			if err := cfg.SaveSession(code); err != nil {
				return fmt.Errorf("failed to save session code: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("New session code: %s", code))
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the session code in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Session == "" {
				return fmt.Errorf("no session code configured; run 'waymark session new'")
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(cfg.Session)
			return nil
		},
	}
}
