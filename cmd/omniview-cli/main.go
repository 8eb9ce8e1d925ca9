// Command omniview-cli drives the renaming engine headlessly: preview
// a canonical filename from taxonomy segments, or batch rename every
// file in a directory with a numbered template.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"omniview/internal/workspace"
	"omniview/rename"
)

type segmentFlags struct {
	class  string
	rev    string
	ver    string
	spec   string
	date   string
	client string
	job    string
	desc   string
}

// memStore keeps prediction memory for the lifetime of one invocation.
type memStore struct {
	values map[string]string
}

func (m *memStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("omniview-cli: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var taxonomyPath string
	var segs segmentFlags

	root := &cobra.Command{
		Use:           "omniview-cli",
		Short:         "Structured file renaming for document workspaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&taxonomyPath, "taxonomy", filepath.Join("config", "taxonomy.yaml"), "taxonomy catalog file")
	pf.StringVar(&segs.class, "class", "", "classification code (e.g. DWG)")
	pf.StringVar(&segs.rev, "rev", "", "revision code (e.g. R01)")
	pf.StringVar(&segs.ver, "ver", "", "version code")
	pf.StringVar(&segs.spec, "spec", "", "spec division code")
	pf.StringVar(&segs.date, "date", "", "date stamp YYYYMMDD (default today)")
	pf.StringVar(&segs.client, "client", "", "client code")
	pf.StringVar(&segs.job, "job", "", "job number")
	pf.StringVar(&segs.desc, "desc", "", "free-text description")

	root.AddCommand(newPreviewCmd(&taxonomyPath, &segs))
	root.AddCommand(newBatchCmd(&taxonomyPath, &segs))
	return root
}

// newEngine builds an engine with the requested segments applied.
func newEngine(taxonomyPath string, segs *segmentFlags, fs rename.FileSystem) (*rename.Engine, error) {
	tax, err := rename.LoadTaxonomyFile(taxonomyPath)
	if err != nil {
		return nil, err
	}
	logger := log.New(os.Stderr, "omniview-cli ", log.LstdFlags)
	eng := rename.NewEngine(tax, fs, &memStore{}, logger)

	s := eng.Segments()
	fixed := map[string]string{
		rename.FieldClass: segs.class,
		rename.FieldRev:   segs.rev,
		rename.FieldVer:   segs.ver,
		rename.FieldSpec:  segs.spec,
	}
	for field, code := range fixed {
		if code == "" {
			continue
		}
		if err := s.Select(field, strings.ToUpper(code)); err != nil {
			return nil, err
		}
	}
	date := segs.date
	if date == "" {
		date = rename.DateStamp(time.Now())
	}
	free := map[string]string{
		rename.FieldDate:   date,
		rename.FieldClient: segs.client,
		rename.FieldJob:    segs.job,
		rename.FieldDesc:   segs.desc,
	}
	for field, value := range free {
		if value == "" {
			continue
		}
		if err := s.SetText(field, value); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

func newPreviewCmd(taxonomyPath *string, segs *segmentFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <filename>",
		Short: "Print the canonical name a file would be renamed to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(*taxonomyPath, segs, nil)
			if err != nil {
				return err
			}
			name := filepath.Base(args[0])
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
			eng.SetActiveFile(&rename.FileEntry{Name: name, Path: name, Kind: rename.KindFile, Ext: ext})
			out := eng.Preview()
			if out == "" {
				return rename.ErrEmptyPrediction
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newBatchCmd(taxonomyPath *string, segs *segmentFlags) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Rename every file directly inside a directory with a numbered template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			eng, err := newEngine(*taxonomyPath, segs, workspace.NewDirFS(dir))
			if err != nil {
				return err
			}
			entries, err := workspace.NewScanner(dir).Scan(cmd.Context())
			if err != nil {
				return err
			}
			// Top-level files only; nested folders keep their contents.
			var files []*rename.FileEntry
			for _, e := range entries {
				if !e.IsDir() {
					files = append(files, e)
				}
			}

			if dryRun {
				base := eng.Segments().BuildName("")
				if base == "" {
					return rename.ErrEmptyPrediction
				}
				for i, f := range files {
					name := fmt.Sprintf("%s-%03d", base, i+1)
					if f.Ext != "" {
						name += "." + f.Ext
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", f.Path, name)
				}
				return nil
			}

			res, err := eng.RenameBatch(cmd.Context(), files)
			if err != nil {
				return err
			}
			for _, r := range res.Renamed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", r.OldName, r.NewName)
			}
			for _, f := range res.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed %s: %v\n", f.Path, f.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %d/%d files\n", res.Succeeded, res.Total)
			if res.Succeeded < res.Total {
				return fmt.Errorf("%d of %d renames failed", res.Total-res.Succeeded, res.Total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without touching files")
	return cmd
}
