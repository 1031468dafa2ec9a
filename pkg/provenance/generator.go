// Package provenance collects build provenance and writes it as a
// package-info source file.
package provenance

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/utkarsh5026/pkginfo/pkg/checksum"
	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/fileops"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
	"github.com/utkarsh5026/pkginfo/pkg/sources"
	"github.com/utkarsh5026/pkginfo/pkg/vcs"
)

// Options configure a Generator. Zero values fall back to the defaults noted
// on each field.
type Options struct {
	ProjectRoot sourcepath.ProjectRoot

	// Scanner selects source files; nil means sources.NewScanner().
	Scanner *sources.Scanner

	// OutputName is the file created in the build directory; empty means DefaultOutputName.
	OutputName string

	VCS        vcs.Kind
	VCSTimeout time.Duration

	// Runner executes VCS commands; nil means vcs.ExecRunner.
	Runner vcs.Runner

	// Now and LookupUser supply the build identity; nil means the wall clock
	// and CurrentUser.
	Now        func() time.Time
	LookupUser func() (string, error)

	// DryRun renders the record without creating directories or files.
	DryRun bool
}

// Result describes a finished generation.
type Result struct {
	Record     Record
	Backend    vcs.Kind
	Files      []checksum.Entry
	OutputPath string
	Content    []byte
	Written    bool
}

// FileCount returns the number of files that went into the checksum.
func (r *Result) FileCount() int {
	return len(r.Files)
}

// Generator produces the provenance file for a project.
type Generator struct {
	opts Options
}

// NewGenerator fills defaults into opts. The project root is required.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.ProjectRoot == "" {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "new_generator", "project root is required", nil)
	}
	if opts.Scanner == nil {
		opts.Scanner = sources.NewScanner()
	}
	if opts.OutputName == "" {
		opts.OutputName = DefaultOutputName
	}
	if strings.ContainsAny(opts.OutputName, `/\`) {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "new_generator",
			"output name must be a bare file name: "+opts.OutputName, nil)
	}
	if opts.VCS == "" {
		opts.VCS = vcs.KindAuto
	}
	if opts.Runner == nil {
		opts.Runner = vcs.ExecRunner{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LookupUser == nil {
		opts.LookupUser = CurrentUser
	}
	return &Generator{opts: opts}, nil
}

// OutputPath returns where the artifact for buildDir is written.
func (g *Generator) OutputPath(buildDir string) string {
	return filepath.Join(g.opts.ProjectRoot.Resolve(buildDir), g.opts.OutputName)
}

// Generate collects identity, VCS metadata and the source checksum for p,
// renders the record and, unless DryRun is set, writes it atomically. Any
// failure aborts before the output file is touched.
func (g *Generator) Generate(ctx context.Context, p Params) (*Result, error) {
	log := logger.With("project_root", g.opts.ProjectRoot.String())

	buildUser, err := g.opts.LookupUser()
	if err != nil {
		return nil, err
	}
	date := FormatDate(g.opts.Now())

	backend, err := vcs.Open(g.opts.VCS, g.opts.ProjectRoot, g.opts.Runner)
	if err != nil {
		return nil, err
	}
	info, err := vcs.Collect(ctx, backend, g.opts.VCSTimeout)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "collect_vcs")
	}
	log.Debug("collected vcs metadata", "backend", info.Backend, "revision", info.Revision, "url", info.URL)

	files, err := g.opts.Scanner.Scan(g.opts.ProjectRoot, p.ChecksumRoot)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "scan_sources")
	}

	sums, err := checksum.Aggregate(files, g.openPath)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "checksum_sources")
	}

	rec := Record{
		Annotation:  p.Annotation,
		Version:     p.Version,
		Revision:    info.Revision,
		User:        buildUser,
		Date:        date,
		URL:         info.URL,
		SrcChecksum: sums.Digest.String(),
		Package:     p.Package,
	}

	content, err := rec.Bytes()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Record:     rec,
		Backend:    info.Backend,
		Files:      sums.Entries,
		OutputPath: g.OutputPath(p.BuildDir),
		Content:    content,
	}
	if g.opts.DryRun {
		return res, nil
	}

	if err := fileops.WriteFileAtomic(res.OutputPath, content); err != nil {
		return nil, scerr.New(pkgName, scerr.CodeIO, "write", res.OutputPath, err)
	}
	res.Written = true
	log.Info("wrote provenance file", "path", res.OutputPath, "files", res.FileCount(), "src_checksum", rec.SrcChecksum)
	return res, nil
}

// openPath maps a canonical path, which starts with the checksum root as the
// user spelled it, back to a file on disk.
func (g *Generator) openPath(c sourcepath.Canonical) string {
	return g.opts.ProjectRoot.Resolve(c.Native())
}
