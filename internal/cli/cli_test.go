package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/config"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graph"
	"github.com/matzehuels/modelgraph/pkg/layout"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/snapshot"
)

const testModel = `{
  "contentTypes": [
    {
      "id": "article",
      "name": "Article",
      "elements": [
        {"type": "text", "id": "title", "name": "Title", "is_required": true},
        {"type": "modular_content", "id": "rel", "name": "Related", "allowed_content_types": [{"id": "page"}]}
      ]
    },
    {"id": "page", "name": "Page", "elements": []},
    {"id": "author", "name": "Author", "elements": []}
  ],
  "snippets": [],
  "taxonomies": []
}`

// newTestCLI returns a CLI reading the given config body from a temp file.
func newTestCLI(t *testing.T, configBody string) *CLI {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvEnvironmentID, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(configBody), 0o600); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, log.InfoLevel)
	c.configPath = path
	return c
}

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(testModel), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, explicit, suffix, want string
	}{
		{"model.json", "", ".frame.json", "model.frame.json"},
		{"dir/model.json", "", ".svg", "dir/model.svg"},
		{"dir.v2/model", "", ".dot", "dir.v2/model.dot"},
		{"model.json", "out.svg", ".svg", "out.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.input, tt.explicit, tt.suffix); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.input, tt.explicit, tt.suffix, got, tt.want)
		}
	}
}

func TestLayoutOptionsOverlay(t *testing.T) {
	base := layout.Defaults()
	base.NodeSep = 80

	f := sessionFlags{rankDir: layout.RankDirTB, rankSep: 120}
	got := f.layoutOptions(base)

	if got.RankDir != layout.RankDirTB || got.RankSep != 120 {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.NodeSep != 80 || got.Align != layout.DefaultAlign {
		t.Errorf("base values lost: %+v", got)
	}
}

func TestNewSessionFlags(t *testing.T) {
	c := newTestCLI(t, "[layout]\nrankdir = \"TB\"\n")
	doc := model.Document{ContentTypes: []model.ContentType{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}}

	s, err := c.newSession(doc, &sessionFlags{view: "default", expandAll: true, noRichText: true})
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout().RankDir != layout.RankDirTB {
		t.Errorf("config layout ignored: %+v", s.Layout())
	}
	st := s.State()
	if len(st.Expanded) != 2 || st.IncludeRichText {
		t.Errorf("state = %+v", st)
	}

	s, err = c.newSession(doc, &sessionFlags{view: "default", isolate: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if f := s.Frame(); len(f.Nodes) != 1 || f.Nodes[0].ID != "b" {
		t.Errorf("isolated frame = %+v", f.Nodes)
	}

	if _, err := c.newSession(doc, &sessionFlags{view: "default", related: "ghost"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown node err = %v", err)
	}
	if _, err := c.newSession(doc, &sessionFlags{view: "tree"}); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("unknown view err = %v", err)
	}
}

func TestRunLayout(t *testing.T) {
	c := newTestCLI(t, "")
	input := writeModel(t)
	output := filepath.Join(t.TempDir(), "frame.json")

	if err := c.runLayout(input, output, &sessionFlags{view: "default"}); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	frame, err := graph.ReadFrame(f)
	if err != nil {
		t.Fatal(err)
	}
	if frame.View != "default" || len(frame.Nodes) != 3 || len(frame.Edges) != 1 {
		t.Errorf("frame = view %q, %d nodes, %d edges", frame.View, len(frame.Nodes), len(frame.Edges))
	}
}

func TestRunRenderDOT(t *testing.T) {
	c := newTestCLI(t, "")
	input := writeModel(t)
	output := filepath.Join(t.TempDir(), "model.dot")

	if err := c.runRender(context.Background(), input, output, formatDOT, &sessionFlags{view: "default", expandAll: true}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	for _, want := range []string{"digraph G {", `"article" -> "page"`, `Title : Text *`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	err = c.runRender(context.Background(), input, output, "pdf", &sessionFlags{view: "default"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("pdf err = %v", err)
	}
}

func TestRunLayoutBadInput(t *testing.T) {
	c := newTestCLI(t, "")
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"contentTypes": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	err := c.runLayout(path, "", &sessionFlags{view: "default"})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want INVALID_DOCUMENT", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	c := newTestCLI(t, "[layout]\nrankdir = \"BT\"\n")
	if err := c.runLayout(writeModel(t), "", &sessionFlags{view: "default"}); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("err = %v, want INVALID_LAYOUT", err)
	}
}

func TestWriteViews(t *testing.T) {
	var buf bytes.Buffer
	writeViews(&buf)
	out := buf.String()
	for _, want := range []string{"default", "snippet", "taxonomy", "Default View", "Shows how snippets are used"} {
		if !strings.Contains(out, want) {
			t.Errorf("views output missing %q:\n%s", want, out)
		}
	}
}

func TestSnapshotCommands(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI(t, "[snapshot]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	store, err := snapshot.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), "prod", model.Document{}); err != nil {
		t.Fatal(err)
	}

	configPath := c.configPath
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", configPath, "snapshot", "list"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "prod") {
		t.Errorf("list output = %q", out.String())
	}

	out.Reset()
	root = c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", configPath, "snapshot", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != filepath.ToSlash(dir) {
		t.Errorf("path output = %q, want %q", out.String(), dir)
	}
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	got, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.ToSlash(dir) {
		t.Errorf("cacheDir = %q, want %q", got, dir)
	}

	c = newTestCLI(t, "[cache]\nbackend = \"none\"\n")
	if _, err := c.cacheDir(); err == nil {
		t.Error("cacheDir should fail without a file backend")
	}

	t.Setenv("XDG_CACHE_HOME", dir)
	c = newTestCLI(t, "")
	got, err = c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, appName) {
		t.Errorf("default cacheDir = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFrameJSONIsIndented(t *testing.T) {
	c := newTestCLI(t, "")
	input := writeModel(t)
	output := filepath.Join(t.TempDir(), "frame.json")
	if err := c.runLayout(input, output, &sessionFlags{view: "snippet"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("frame is not JSON: %v", err)
	}
	if v["view"] != "snippet" {
		t.Errorf("view = %v", v["view"])
	}
}
