package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/debctl/internal/dist"
	"github.com/ralt/debctl/internal/lines"
	"github.com/ralt/debctl/internal/utils"
)

// NewFilesCmd creates the files command
func NewFilesCmd() *cobra.Command {
	var (
		adds      []string
		removes   []string
		checksums bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "files [flags] FILE",
		Short: "Parse, edit and rewrite a file manifest",
		Long: `Reads a debian/files style manifest, applies any --add/--remove
edits, and prints it sorted by filename. With --checksums, entries are
resolved relative to the manifest and printed as checksum lines
(md5 size section priority filename) instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			list := dist.NewFiles()

			if _, err := os.Stat(path); err == nil {
				src, closer, err := lines.Open(path)
				if err != nil {
					return err
				}
				count, perr := list.Parse(src)
				closer.Close()
				if perr != nil {
					return perr
				}
				logrus.Debugf("Parsed %d manifest entries from %s", count, path)
			} else if len(adds) == 0 {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}

			for _, add := range adds {
				parts := strings.Fields(add)
				if len(parts) != 3 {
					return fmt.Errorf("--add wants \"filename section priority\", got %q", add)
				}
				list.Add(parts[0], parts[1], parts[2])
			}
			for _, filename := range removes {
				if !list.Remove(filename) {
					logrus.Warnf("No manifest entry for %s", filename)
				}
			}

			if checksums {
				return printChecksums(list, filepath.Dir(path))
			}

			var buf bytes.Buffer
			if _, err := list.WriteTo(&buf); err != nil {
				return err
			}
			if write {
				return utils.WriteFile(path, buf.Bytes(), 0644)
			}
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&adds, "add", nil, "Add an entry: \"filename section priority\"")
	cmd.Flags().StringArrayVar(&removes, "remove", nil, "Remove the entry for a filename")
	cmd.Flags().BoolVar(&checksums, "checksums", false, "Print Files-field checksum lines instead of the manifest")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the manifest in place")

	return cmd
}

// printChecksums emits one Files-field line per entry, in the same sorted
// order the manifest serializes with.
func printChecksums(list *dist.Files, baseDir string) error {
	for _, e := range list.All() {
		cs, err := utils.CalculateChecksums(filepath.Join(baseDir, e.Filename))
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", e.Filename, err)
		}
		fmt.Printf("%s %d %s %s %s\n", cs.MD5, cs.Size, e.Section, e.Priority, e.Filename)
	}
	return nil
}
