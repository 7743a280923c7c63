package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/deb"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PACKAGE.deb...",
		Short: "Print the control stanza of binary packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				if !deb.IsDeb(path) {
					return fmt.Errorf("%s does not look like a Debian package", path)
				}

				rec, err := deb.ReadControl(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}

				if i > 0 {
					fmt.Println()
				}
				if _, err := rec.WriteTo(os.Stdout); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return cmd
}
