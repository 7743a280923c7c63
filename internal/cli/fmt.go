package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/control"
	"github.com/ralt/debctl/internal/lines"
	"github.com/ralt/debctl/internal/utils"
)

// NewFmtCmd creates the fmt command
func NewFmtCmd() *cobra.Command {
	var (
		kindName string
		write    bool
		allowPGP bool
		allowDup bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] [FILE...]",
		Short: "Reformat control paragraphs in canonical field order",
		Long: `Parses every paragraph of the input and re-emits it with fields in
the canonical order for the given kind. Fields without a canonical
position keep their original order. Reads stdin when no file is given;
.gz input is decompressed transparently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resolveKind(kindName)
			if err != nil {
				return err
			}

			var opts []control.Option
			if cmd.Flags().Changed("allow-pgp") {
				opts = append(opts, control.WithAllowPGP(allowPGP))
			} else if cfg.AllowPGP {
				opts = append(opts, control.WithAllowPGP(true))
			}

			dup := control.RejectDuplicates
			if allowDup || cfg.AllowDuplicates {
				dup = control.OverwriteDuplicates
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, path := range args {
				if err := reformat(path, kind, opts, dup, write); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "unknown", "Control kind (deb, dsc, changes, apt-pkg, apt-src, ...)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place instead of printing")
	cmd.Flags().BoolVar(&allowPGP, "allow-pgp", false, "Accept a clearsign envelope regardless of kind")
	cmd.Flags().BoolVar(&allowDup, "allow-duplicates", false, "Overwrite duplicate fields instead of failing")

	return cmd
}

func reformat(path string, kind control.Kind, opts []control.Option, dup control.DuplicatePolicy, write bool) error {
	src, closer, err := openSource(path)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	rec := control.NewRecord(kind, nil, opts...)
	popts := rec.ParseOptions()
	popts.Duplicates = dup

	parser := control.NewParser(src, popts)
	var buf bytes.Buffer
	count := 0
	for {
		st, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if count > 0 {
			buf.WriteString("\n")
		}
		count++

		out := control.NewRecord(kind, st, opts...)
		if _, err := out.WriteTo(&buf); err != nil {
			return err
		}
	}
	logrus.Debugf("Reformatted %d paragraphs from %s", count, src.Name())

	if write && path != "-" {
		return utils.WriteFile(path, buf.Bytes(), 0644)
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// openSource opens a path as a line source, "-" meaning stdin
func openSource(path string) (*lines.Reader, io.Closer, error) {
	if path == "-" {
		return lines.NewReader(os.Stdin, "-"), nil, nil
	}
	return lines.Open(path)
}

func resolveKind(name string) (control.Kind, error) {
	kind, ok := control.KindFromString(name)
	if !ok && name != "unknown" {
		return control.KindUnknown, fmt.Errorf("unknown control kind %q", name)
	}
	return kind, nil
}
