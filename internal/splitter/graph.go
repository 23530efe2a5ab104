package splitter

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// graphDiagnostics inspects the segment cross-reference edges for two
// hazards the generated package would hit at import time: reference
// cycles between segments, and references that pull in a segment
// declared later in the document (its statements ran later in the
// original file, so relative order may matter).
func graphDiagnostics(scan *scanResult, refs [][]crossRef) []Diagnostic {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, seg := range scan.segments {
		_ = g.AddVertex(seg.module)
	}

	var diags []Diagnostic
	for segIdx, segRefs := range refs {
		seg := scan.segments[segIdx]
		for _, ref := range segRefs {
			owner := scan.segments[ref.owner]
			if ref.owner > segIdx {
				diags = append(diags, Diagnostic{
					Code:    DiagForwardReference,
					Message: fmt.Sprintf("%s references %q from %s, which the original file defined later", seg.name, ref.name, owner.name),
					Line:    seg.markerLine,
				})
			}
			err := g.AddEdge(seg.module, owner.module)
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				diags = append(diags, Diagnostic{
					Code:    DiagCircularReference,
					Message: fmt.Sprintf("%s and %s reference each other; the package will hit a circular import", seg.name, owner.name),
					Line:    seg.markerLine,
				})
			}
		}
	}
	return diags
}
