package cli

import (
	"github.com/spf13/cobra"
)

func newOwnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Owner-only registry commands",
	}

	cmd.AddCommand(newOwnerCheckCmd())
	cmd.AddCommand(newOwnerAllowedCmd())
	cmd.AddCommand(newOwnerAllowCmd())
	cmd.AddCommand(newOwnerDisallowCmd())
	cmd.AddCommand(newOwnerPromoteCmd())
	cmd.AddCommand(newOwnerDemoteCmd())

	return cmd
}

func newOwnerCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether this session is the owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OwnerCheckResult

			if err := client.Get("/api/owner/check", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOwnerAllowedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allowed",
		Short: "List allow-listed session codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []AllowedSession

			if err := client.Get("/api/owner/allowed-sessions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOwnerAllowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allow <session-code>",
		Short: "Add a session code to the allow-list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"sessionCode": args[0]}
			var result AllowSessionResult

			if err := client.Post("/api/owner/allow-session", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(result.Message)
			return nil
		},
	}
}

func newOwnerDisallowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disallow <session-code>",
		Short: "Remove a session code from the allow-list (demotes it too)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"sessionCode": args[0]}
			var result MessageResult

			if err := client.Delete("/api/owner/remove-session", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOwnerPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <session-code>",
		Short: "Promote an allow-listed session to admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"sessionCode": args[0]}
			var result MessageResult

			if err := client.Put("/api/owner/promote", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOwnerDemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demote <session-code>",
		Short: "Revoke a session's admin privilege",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"sessionCode": args[0]}
			var result MessageResult

			if err := client.Delete("/api/owner/demote", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
