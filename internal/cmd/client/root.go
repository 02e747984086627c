package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the flake client with the id
// and user command groups.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "flake",
		Short: "flake client commands",
	}
	root.AddCommand(NewIDCommand(), NewUserCommand())
	return root
}
