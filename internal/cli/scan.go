package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qrlgen-dev/qrlgen/internal/fileutil"
	"github.com/qrlgen-dev/qrlgen/internal/ident"
	"github.com/qrlgen-dev/qrlgen/internal/source"
	"github.com/qrlgen-dev/qrlgen/internal/walker"
)

// boundaryRecord is one named capture boundary in scan/extract output.
type boundaryRecord struct {
	File          string   `json:"file"`
	Line          int      `json:"line"`
	Segments      []string `json:"segments"`
	DisplayName   string   `json:"display_name"`
	SymbolName    string   `json:"symbol_name"`
	LocalFileName string   `json:"local_file_name"`
	Hash          string   `json:"hash"`
	Scope         string   `json:"scope,omitempty"`
}

type scanReport struct {
	Target     string           `json:"target"`
	Boundaries []boundaryRecord `json:"boundaries"`
	Issues     []walker.Issue   `json:"issues,omitempty"`
}

func RunScan(cmd *cobra.Command, args []string) error {
	opts, err := resolveBuildOptions(cmd, args)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	result, err := walker.New().ScanDir(opts.Root, opts.Rules)
	if err != nil {
		return err
	}

	records, err := nameBoundaries(result, opts.Target, opts.Scope)
	if err != nil {
		return err
	}

	if asJSON {
		return fileutil.PrintJSON(os.Stdout, scanReport{
			Target:     opts.Target.String(),
			Boundaries: records,
			Issues:     result.Issues,
		})
	}

	for _, rec := range records {
		fmt.Printf("%s:%d\t%s\t%s\n", rec.File, rec.Line, rec.DisplayName, rec.SymbolName)
	}
	reportIssues(result.Issues)
	fmt.Printf("%d boundaries in %d files (target %s)\n",
		len(records), len(result.Files), opts.Target)
	return nil
}

// nameBoundaries runs identifier synthesis over every discovered boundary.
func nameBoundaries(result *walker.ScanResult, target ident.Target, scope string) ([]boundaryRecord, error) {
	records := make([]boundaryRecord, 0)
	for _, file := range result.Files {
		src, err := source.New(file.Path)
		if err != nil {
			return nil, err
		}
		for _, b := range file.Boundaries {
			id := ident.New(src, b.SegmentTexts(), target, scope)
			records = append(records, boundaryRecord{
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
	return records, nil
}

func reportIssues(issues []walker.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Severity, issue.File, issue.Message)
	}
}
