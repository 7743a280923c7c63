package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/config"
)

// cfg holds defaults loaded from the config file; flags take precedence
var cfg config.Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "debctl",
		Short: "Parse, reformat and sign Debian control metadata",
		Long: `Debctl works with Debian control-format metadata: debian/control
stanzas, .dsc and .changes files, APT Packages/Sources indices, and
debian/files manifests.

It parses the paragraph grammar strictly (duplicate fields, folded
continuation lines, OpenPGP clearsign envelopes), re-emits paragraphs
in canonical per-kind field order, and can clearsign the result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", cfg)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".debctl.toml", "Path to config file")

	// Add subcommands
	rootCmd.AddCommand(NewFmtCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewFilesCmd())
	rootCmd.AddCommand(NewSignCmd())
	rootCmd.AddCommand(NewLintCmd())

	return rootCmd
}
