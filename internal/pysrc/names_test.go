package pysrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for reference collection:
// - Count bare names and attribute roots, never attribute selectors
// - Skip keyword-argument names but keep their values
// - Skip def/class names and parameter declarations, keep defaults,
//   annotations and decorator expressions
// - Skip every identifier inside import statements
// - Skip global/nonlocal lists
// - Restrict collection to the requested line spans

func wholeDoc(doc *Document) []LineSpan {
	return []LineSpan{{Start: 1, End: doc.LineCount()}}
}

func TestReferences_AttributesAndCalls(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "result = os.path.join(base, name)\n")
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["os"])
	assert.True(t, refs["base"])
	assert.True(t, refs["name"])
	assert.True(t, refs["result"], "assignment targets count as occurrences")
	assert.False(t, refs["path"])
	assert.False(t, refs["join"])
}

func TestReferences_KeywordArguments(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "request(url, timeout=limit, verify=True)\n")
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["request"])
	assert.True(t, refs["url"])
	assert.True(t, refs["limit"])
	assert.False(t, refs["timeout"])
	assert.False(t, refs["verify"])
}

func TestReferences_FunctionDefinitions(t *testing.T) {
	t.Parallel()

	source := `@app.route
def handler(req, limit=DEFAULT, *extra, **options):
    return req.body + fallback
`
	doc := parseDoc(t, source)
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["app"], "decorator expressions are references")
	assert.True(t, refs["DEFAULT"], "default values are references")
	assert.True(t, refs["req"])
	assert.True(t, refs["fallback"])
	assert.False(t, refs["handler"])
	assert.False(t, refs["limit"])
	assert.False(t, refs["extra"])
	assert.False(t, refs["options"])
}

func TestReferences_Annotations(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "def convert(value: Source) -> Target:\n    return value\n")
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["Source"])
	assert.True(t, refs["Target"])
	assert.False(t, refs["convert"])
}

func TestReferences_ImportInternals(t *testing.T) {
	t.Parallel()

	source := `import os.path
from collections import OrderedDict as OD
print(os.sep)
`
	doc := parseDoc(t, source)
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["print"])
	assert.True(t, refs["os"], "usage in the body counts")
	assert.False(t, refs["path"])
	assert.False(t, refs["collections"])
	assert.False(t, refs["OrderedDict"])
	assert.False(t, refs["OD"])
}

func TestReferences_GlobalStatement(t *testing.T) {
	t.Parallel()

	source := `def bump():
    global counter
    total = counter + 1
`
	doc := parseDoc(t, source)
	refs := doc.References(wholeDoc(doc))

	// The global list itself is structural; the read on the next line is not.
	assert.True(t, refs["counter"])
	assert.True(t, refs["total"])

	onlyGlobal := doc.References([]LineSpan{{Start: 2, End: 2}})
	assert.False(t, onlyGlobal["counter"])
}

func TestReferences_SpanRestriction(t *testing.T) {
	t.Parallel()

	source := `alpha()
beta()
gamma()
`
	doc := parseDoc(t, source)

	refs := doc.References([]LineSpan{{Start: 2, End: 2}})
	assert.False(t, refs["alpha"])
	assert.True(t, refs["beta"])
	assert.False(t, refs["gamma"])

	split := doc.References([]LineSpan{{Start: 1, End: 1}, {Start: 3, End: 3}})
	assert.True(t, split["alpha"])
	assert.False(t, split["beta"])
	assert.True(t, split["gamma"])

	assert.Empty(t, doc.References(nil))
}

func TestReferences_ClassBody(t *testing.T) {
	t.Parallel()

	source := `class Connector(Base):
    retries = MAX_RETRIES

    def open(self):
        return connect(self.limit)
`
	doc := parseDoc(t, source)
	refs := doc.References(wholeDoc(doc))

	assert.True(t, refs["Base"], "superclasses are references")
	assert.True(t, refs["MAX_RETRIES"])
	assert.True(t, refs["connect"])
	assert.True(t, refs["retries"], "class-body assignment targets count")
	assert.False(t, refs["Connector"])
	assert.False(t, refs["open"])
	assert.False(t, refs["limit"], "attribute selectors never count")
}

func TestNodeReferences_SingleStatement(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "first = one()\nsecond = two()\n")
	stmts := doc.TopLevel()
	require.Len(t, stmts, 2)

	refs := doc.NodeReferences(stmts[1].Node)
	assert.True(t, refs["two"])
	assert.False(t, refs["one"])

	assert.Empty(t, doc.NodeReferences(nil))
}
