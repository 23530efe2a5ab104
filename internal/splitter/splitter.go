package splitter

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// Split plans the full artifact set for one annotated document. It is
// pure: nothing touches disk. The returned result carries the rendered
// artifacts, the per-segment resolution details and every diagnostic.
// With Options.Strict, any diagnostic turns into ErrStrictDiagnostics
// (the result is still returned for reporting).
func Split(source []byte, opts Options) (*Result, error) {
	return SplitWithLogger(source, opts, zap.NewNop())
}

// SplitWithLogger is Split with stage-level logging.
func SplitWithLogger(source []byte, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := pysrc.Parse(source)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if errs := doc.SyntaxErrors(); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("input does not parse: %w", &first)
	}

	runID := uuid.New().String()
	log := logger.With(zap.String("run_id", runID))

	var diags []Diagnostic

	main, mainDiags := detectMain(doc)
	diags = append(diags, mainDiags...)

	scan, scanDiags, err := scanDocument(doc, main)
	if err != nil {
		return nil, err
	}
	diags = append(diags, scanDiags...)

	if len(scan.segments) == 0 && main == nil {
		return nil, ErrNothingToSplit
	}

	symbols, symbolDiags := collectSymbols(doc, scan, main)
	diags = append(diags, symbolDiags...)

	if main == nil && len(scan.prologue.body) > 0 {
		diags = append(diags, Diagnostic{
			Code:    DiagDroppedPrologue,
			Message: fmt.Sprintf("%d prologue lines before the first marker are not carried into any artifact (no main block)", len(scan.prologue.body)),
			Line:    scan.prologue.span.Start,
		})
	}

	log.Debug("document scanned",
		zap.Int("segments", len(scan.segments)),
		zap.Int("imports", len(scan.imports.entries)),
		zap.Int("bindings", len(symbols.bindings)),
		zap.Bool("main_block", main != nil))

	res := &Result{RunID: runID}
	if main != nil {
		res.Main = &MainResult{Form: main.form, Lines: main.span}
		res.Artifacts = append(res.Artifacts, buildEntry(doc, scan, symbols, main))
	}

	refs := make([][]crossRef, len(scan.segments))
	for i, seg := range scan.segments {
		r := resolveSegment(doc, scan, symbols, main, i)
		refs[i] = r.crossRefs

		res.Artifacts = append(res.Artifacts, renderSegment(seg, r))
		res.Segments = append(res.Segments, SegmentResult{
			File:       seg.name,
			Module:     seg.module,
			MarkerLine: seg.markerLine,
			Lines:      seg.span,
			Exports:    seg.exports,
			Imports:    r.importStmts,
			CrossRefs:  crossRefNames(r.crossRefs),
			Bindings:   r.bindingNames,
		})

		log.Debug("segment resolved",
			zap.String("file", seg.name),
			zap.Int("exports", len(seg.exports)),
			zap.Int("imports", len(r.importStmts)),
			zap.Int("cross_refs", len(r.crossRefs)))
	}

	diags = append(diags, graphDiagnostics(scan, refs)...)

	res.Artifacts = append(res.Artifacts, renderInit(scan, symbols))
	res.Diagnostics = diags

	log.Info("split planned",
		zap.Int("artifacts", len(res.Artifacts)),
		zap.Int("diagnostics", len(diags)))

	if opts.Strict && len(diags) > 0 {
		return res, fmt.Errorf("%w: %d reported", ErrStrictDiagnostics, len(diags))
	}
	return res, nil
}

func crossRefNames(refs []crossRef) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.name
	}
	return names
}
