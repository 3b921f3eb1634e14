package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Map point commands",
	}

	cmd.AddCommand(newPointsListCmd())
	cmd.AddCommand(newPointsMineCmd())
	cmd.AddCommand(newPointsAddCmd())
	cmd.AddCommand(newPointsEditCmd())
	cmd.AddCommand(newPointsShareCmd())
	cmd.AddCommand(newPointsDeleteCmd())

	return cmd
}

func newPointsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public points",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Point

			if err := client.Get("/api/points", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPointsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own points (any status)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Point

			if err := client.Get("/api/points/private", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPointsAddCmd() *cobra.Command {
	var name string
	var x, z int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new private point",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name, "x": x, "z": z}
			var result Point

			if err := client.Post("/api/points", req, &result); err != nil {
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

func newPointsEditCmd() *cobra.Command {
	var name string
	var x, z int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a point you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name, "x": x, "z": z}
			var result Point

			if err := client.Put("/api/points/"+args[0], req, &result); err != nil {
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

func newPointsShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Submit a private point for publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Point

			if err := client.Put("/api/points/share/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Point %q is now %s", result.Name, result.Status))
			return nil
		},
	}
}

func newPointsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a point you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			if err := client.Delete("/api/points/"+args[0], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
