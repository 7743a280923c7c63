package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/signer"
)

// NewSignCmd creates the sign command
func NewSignCmd() *cobra.Command {
	var (
		keyPath    string
		passphrase string
		detach     bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "sign [flags] FILE",
		Short: "Clearsign a control file with an OpenPGP key",
		Long: `Wraps a control file in the clearsigned envelope that .dsc and
.changes files carry, or emits an armored detached signature with
--detach. The key and passphrase default to the config file values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyPath == "" {
				keyPath = cfg.SignKey
			}
			if passphrase == "" {
				passphrase = cfg.SignPassphrase
			}
			if keyPath == "" {
				return fmt.Errorf("no signing key: use --key or set sign_key in the config")
			}

			gpg, err := signer.NewGPGSigner(keyPath, passphrase)
			if err != nil {
				return fmt.Errorf("failed to initialize signer: %w", err)
			}
			logrus.Debug("GPG signer initialized")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var signed []byte
			if detach {
				signed, err = gpg.SignDetached(data)
			} else {
				signed, err = gpg.SignCleartext(data)
			}
			if err != nil {
				return fmt.Errorf("failed to sign %s: %w", args[0], err)
			}

			if output != "" {
				return os.WriteFile(output, signed, 0644)
			}
			_, err = os.Stdout.Write(signed)
			return err
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Path to OpenPGP private key")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "Key passphrase")
	cmd.Flags().BoolVar(&detach, "detach", false, "Emit a detached signature instead of clearsigning")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}
