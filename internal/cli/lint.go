package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/control"
)

// NewLintCmd creates the lint command
func NewLintCmd() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "lint [flags] FILE...",
		Short: "Strictly parse control files and report problems",
		Long: `Parses each file with the strict defaults of the given kind:
duplicate fields are rejected and a clearsign envelope is only accepted
for kinds that carry one (dsc, changes). Fields outside the kind's
canonical set are reported as warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resolveKind(kindName)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				if err := lintFile(path, kind); err != nil {
					logrus.Errorf("%s: %v", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "unknown", "Control kind (deb, dsc, changes, apt-pkg, apt-src, ...)")

	return cmd
}

func lintFile(path string, kind control.Kind) error {
	src, closer, err := openSource(path)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	rec := control.NewRecord(kind, nil)
	parser := control.NewParser(src, rec.ParseOptions())

	known := make(map[string]bool)
	for _, name := range rec.OutputOrder() {
		known[name] = true
	}

	count := 0
	for {
		st, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		count++

		if len(known) == 0 {
			continue
		}
		for _, name := range st.Names() {
			if !known[name] && !isUserField(name) {
				logrus.Warnf("%s: paragraph %d: field %s is not known in %s", path, count, name, rec.Name())
			}
		}
	}

	logrus.Infof("%s: %d paragraphs OK", path, count)
	return nil
}

// isUserField matches the X[SBC]- user-defined field namespace, which is
// valid in any paragraph kind.
func isUserField(name string) bool {
	if len(name) < 2 || name[0] != 'X' {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case 'S', 'B', 'C':
			continue
		case '-':
			return i > 1 || len(name) > 2
		default:
			return false
		}
	}
	return false
}
