package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderation commands (admin role required)",
	}

	cmd.AddCommand(newAdminLoginCmd())
	cmd.AddCommand(newAdminPendingCmd())
	cmd.AddCommand(newAdminAcceptCmd())
	cmd.AddCommand(newAdminRejectCmd())
	cmd.AddCommand(newAdminEditCmd())
	cmd.AddCommand(newAdminDeleteCmd())

	return cmd
}

func newAdminLoginCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Upgrade this session to admin with the shared secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"adminCode": code}
			var result LoginResult

			if err := client.Post("/api/admin/login", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Admin code (required)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newAdminPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List points awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Point

			if err := client.Get("/api/admin/pending", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <id>",
		Short: "Approve a pending point for publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Point

			if err := client.Put("/api/admin/accept/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending point back to its owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Point

			if err := client.Put("/api/admin/reject/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminEditCmd() *cobra.Command {
	var name string
	var x, z int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a public point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name, "x": x, "z": z}
			var result Point

			if err := client.Put("/api/admin/edit/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Point name (required)")
	cmd.Flags().IntVar(&x, "x", 0, "X coordinate")
	cmd.Flags().IntVar(&z, "z", 0, "Z coordinate")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAdminDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a public point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			if err := client.Delete("/api/admin/delete/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
