package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qrlgen-dev/qrlgen/internal/emit"
	"github.com/qrlgen-dev/qrlgen/internal/fileutil"
	"github.com/qrlgen-dev/qrlgen/internal/ident"
	"github.com/qrlgen-dev/qrlgen/internal/source"
	"github.com/qrlgen-dev/qrlgen/internal/walker"
)

type extractReport struct {
	Target    string           `json:"target"`
	OutDir    string           `json:"out_dir"`
	Written   int              `json:"written"`
	Unchanged int              `json:"unchanged"`
	Modules   []boundaryRecord `json:"modules"`
	Issues    []walker.Issue   `json:"issues,omitempty"`
}

func RunExtract(cmd *cobra.Command, args []string) error {
	opts, err := resolveBuildOptions(cmd, args)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	result, err := walker.New().ScanDir(opts.Root, opts.Rules)
	if err != nil {
		return err
	}

	outDir := opts.Out
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(opts.Root, outDir)
	}

	report := extractReport{
		Target:  opts.Target.String(),
		OutDir:  opts.Out,
		Modules: make([]boundaryRecord, 0),
		Issues:  result.Issues,
	}

	for _, file := range result.Files {
		content, err := os.ReadFile(filepath.Join(opts.Root, file.Path))
		if err != nil {
			return fmt.Errorf("failed to re-read %s: %w", file.Path, err)
		}
		src, err := source.New(file.Path)
		if err != nil {
			return err
		}

		for _, b := range file.Boundaries {
			id := ident.New(src, b.SegmentTexts(), opts.Target, opts.Scope)
			mod := emit.Module{
				Id:      id,
				Body:    string(content[b.StartByte:b.EndByte]),
				Imports: []emit.Import{emit.QRLImport()},
			}

			outPath := filepath.Join(outDir, filepath.FromSlash(id.LocalFileName)+".js")
			changed, err := fileutil.WriteIfChanged(outPath, []byte(mod.Render()))
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			if changed {
				report.Written++
			} else {
				report.Unchanged++
			}

			report.Modules = append(report.Modules, boundaryRecord{
				File:          file.Path,
				Line:          b.Line,
				Segments:      b.SegmentTexts(),
				DisplayName:   id.DisplayName,
				SymbolName:    id.SymbolName,
				LocalFileName: id.LocalFileName,
				Hash:          id.Hash,
				Scope:         id.Scope,
			})
		}
	}

	if asJSON {
		return fileutil.PrintJSON(os.Stdout, report)
	}

	for _, mod := range report.Modules {
		fmt.Printf("%s -> %s.js\n", mod.File, mod.LocalFileName)
	}
	reportIssues(report.Issues)
	fmt.Printf("%d modules written, %d unchanged (target %s, out %s)\n",
		report.Written, report.Unchanged, opts.Target, opts.Out)
	return nil
}
