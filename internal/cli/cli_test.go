package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	uio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

const sampleDiagram = `classDiagram
Animal <|-- Duck
Animal : +int age
Duck : +swim()
note "ducks float"
`

type cliRun struct {
	stdout string
	status string
	err    error
}

// isolate points config and cache lookups at temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	cacheDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("UMLGRAPH_CACHE_DIR", cacheDir)
	t.Setenv("UMLGRAPH_CACHE_BACKEND", "file")
	return cacheDir
}

func runCLI(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()

	var status bytes.Buffer
	old := statusOut
	statusOut = &status
	t.Cleanup(func() { statusOut = old })

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Stdin = strings.NewReader(stdin)
	c.Stdout = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return cliRun{stdout: out.String(), status: status.String(), err: err}
}

func TestParse_StdinJSON(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "parse")
	require.NoError(t, r.err)

	g, err := uio.ReadJSON(strings.NewReader(r.stdout))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)

	duck, ok := g.Node("Duck")
	require.True(t, ok)
	assert.Equal(t, []string{"+swim()"}, duck.Members)
	assert.Equal(t, 200.0, duck.Position.Y)
	assert.Empty(t, r.status, "no status lines when writing to stdout")
}

func TestParse_YAMLToFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "diagram.mmd")
	out := filepath.Join(dir, "diagram.yaml")
	require.NoError(t, os.WriteFile(in, []byte(sampleDiagram), 0o644))

	r := runCLI(t, "", "parse", in, "-f", "yaml", "-o", out)
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.status, "2 classes")
	assert.Contains(t, r.status, "2 lines ignored")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	g, err := uio.ReadYAML(f)
	require.NoError(t, err)
	assert.Len(t, g.Edges, 1)
}

func TestParse_RejectsDrawingFormat(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "parse", "-f", "svg")
	require.Error(t, r.err)
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeInvalidFormat))
}

func TestParse_MissingFile(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "nope.mmd"))
	require.Error(t, r.err)
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeFileNotFound))
}

func TestParse_BinaryInput(t *testing.T) {
	isolate(t)
	r := runCLI(t, "A <|-- B\x00", "parse")
	require.Error(t, r.err)
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeInvalidInput))
}

func TestParse_EmptyInput(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "parse")
	require.NoError(t, r.err)

	g, err := uio.ReadJSON(strings.NewReader(r.stdout))
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestParse_ConfigDefaultFormat(t *testing.T) {
	isolate(t)
	t.Setenv("UMLGRAPH_FORMAT", "yaml")
	r := runCLI(t, sampleDiagram, "parse")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "nodes:"), r.stdout)
}

func TestRender_DOT(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "render", "-f", "dot")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "digraph G {"))
	assert.Contains(t, r.stdout, "+swim()")

	compact := runCLI(t, sampleDiagram, "render", "-f", "dot", "--compact")
	require.NoError(t, compact.err)
	assert.NotContains(t, compact.stdout, "+swim()")
}

func TestRender_RejectsDataFormat(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "render", "-f", "json")
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeInvalidFormat))
}

func TestInspect(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "inspect")
	require.NoError(t, r.err)
	for _, want := range []string{"Animal", "Duck", "+int age", "+swim()", "inheritance", "2 ignored", "line 5"} {
		assert.Contains(t, r.stdout, want)
	}
}

func TestCache_PathAndClear(t *testing.T) {
	cacheDir := isolate(t)

	r := runCLI(t, "", "cache", "path")
	require.NoError(t, r.err)
	assert.Equal(t, cacheDir+"\n", r.stdout)

	require.NoError(t, runCLI(t, sampleDiagram, "render", "-f", "dot").err)
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries, "render should store the artifact")

	r = runCLI(t, "", "cache", "clear")
	require.NoError(t, r.err)
	assert.Contains(t, r.status, "Cleared file cache")
	entries, err = os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCache_NoCacheFlag(t *testing.T) {
	cacheDir := isolate(t)
	require.NoError(t, runCLI(t, sampleDiagram, "parse", "--no-cache").err)
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConfig_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	r := runCLI(t, sampleDiagram, "parse", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeFileNotFound))
}

func TestVersion(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "--version")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "umlgraph version")
}

func TestCompletion(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "completion", "bash")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "umlgraph")

	r = runCLI(t, "", "completion", "tcsh")
	assert.Error(t, r.err)
}

func TestRelationLines(t *testing.T) {
	g := pipeline.Process("A <|-- B\nB ..> C : uses\nC -- C")
	assert.Equal(t, []string{"→ B inheritance"}, relationLines(g, "A"))
	assert.Equal(t, []string{`→ C dependency "uses"`, "← A inheritance"}, relationLines(g, "B"))
	assert.Equal(t, []string{"↺ link", "← B dependency \"uses\""}, relationLines(g, "C"))
}

func TestClassBrowser(t *testing.T) {
	a := pipeline.Analyze(context.Background(), "A <|-- B\nB --> C\nA : +name")
	var m tea.Model = newClassBrowser(a)

	assert.Contains(t, m.View(), "+name")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.(classBrowser).cursor)

	// B points at C.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.(classBrowser).cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.(classBrowser).cursor, "cursor stays on the last class")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClassBrowser_Empty(t *testing.T) {
	m := newClassBrowser(pipeline.Analyze(context.Background(), ""))
	assert.Contains(t, m.View(), "no classes")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, next.(classBrowser).cursor)
}

func TestServe_PortInUse(t *testing.T) {
	isolate(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	r := runCLI(t, "", "serve", "--addr", ln.Addr().String(), "--no-cache", "--no-metrics")
	require.Error(t, r.err)
	assert.True(t, uerrors.Is(r.err, uerrors.ErrCodeInvalidConfig))
	assert.NotContains(t, r.status, "Listening on")
}
