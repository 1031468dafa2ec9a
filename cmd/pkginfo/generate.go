package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/pkginfo/cmd/ui"
	"github.com/utkarsh5026/pkginfo/pkg/provenance"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

func (a *app) generate(cmd *cobra.Command, args []string) error {
	params, err := provenance.ParseParams(args)
	if err != nil {
		return err
	}

	root, err := sourcepath.NewProjectRoot(a.settings.ProjectRoot)
	if err != nil {
		return err
	}

	gen, err := provenance.NewGenerator(provenance.Options{
		ProjectRoot: root,
		Scanner:     a.settings.Scanner(),
		OutputName:  a.settings.OutputName,
		VCS:         a.settings.VCS,
		VCSTimeout:  a.settings.VCSTimeout,
		Runner:      a.runner,
		DryRun:      a.settings.DryRun,
	})
	if err != nil {
		return err
	}

	res, err := gen.Generate(cmd.Context(), params)
	if err != nil {
		return err
	}

	if a.settings.ShowFiles {
		a.showFiles(res)
	}
	if a.settings.DryRun {
		fmt.Fprint(a.stdout, string(res.Content))
		fmt.Fprintln(a.stderr, ui.WarningMessage("dry run: "+res.OutputPath+" not written"))
	}

	fmt.Fprintln(a.stdout, reportLine(res.FileCount(), params.ChecksumRoot, a.settings.Suffix))
	return nil
}

// reportLine is the single line printed after a successful run.
func reportLine(count int, checksumRoot, suffix string) string {
	return fmt.Sprintf("Checksummed %d %s/**%s files", count, checksumRoot, suffix)
}

func (a *app) showFiles(res *provenance.Result) {
	rows := make([]ui.FileDigest, 0, len(res.Files))
	for _, f := range res.Files {
		rows = append(rows, ui.FileDigest{Path: f.Path.String(), Digest: f.Digest.String()})
	}
	ui.RenderFileTable(a.stdout, rows, res.Record.SrcChecksum)
	fmt.Fprintln(a.stdout)
}
