package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/errors"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/snapshot"
)

const testDocument = `{
  "contentTypes": [
    {
      "id": "article",
      "name": "Article",
      "elements": [
        {"type": "text", "id": "title", "name": "Title"},
        {"type": "modular_content", "id": "rel", "name": "Related", "allowed_content_types": [{"id": "page"}]},
        {"type": "snippet", "id": "seo", "snippet": {"id": "s1"}}
      ]
    },
    {"id": "page", "name": "Page", "elements": []}
  ],
  "snippets": [
    {"id": "s1", "name": "SEO", "elements": [{"type": "text", "id": "meta", "name": "Meta"}]}
  ],
  "taxonomies": []
}`

const testDocumentWithAuthor = `{
  "contentTypes": [
    {"id": "article", "name": "Article", "elements": []},
    {"id": "page", "name": "Page", "elements": []},
    {"id": "author", "name": "Author", "elements": []}
  ],
  "snippets": [],
  "taxonomies": []
}`

type testResponse struct {
	ID    string `json:"id"`
	View  string `json:"view"`
	State struct {
		Expanded        []string               `json:"expandedNodeIds"`
		Isolation       *struct{ Mode string } `json:"isolation"`
		IncludeRichText bool                   `json:"includeRichTextEdges"`
	} `json:"state"`
	Frame struct {
		View  string `json:"view"`
		Nodes []struct {
			ID       string `json:"id"`
			Expanded bool   `json:"expanded"`
		} `json:"nodes"`
		Edges []struct {
			ID string `json:"id"`
		} `json:"edges"`
	} `json:"frame"`
}

func (r testResponse) nodeIDs() []string {
	ids := make([]string, len(r.Frame.Nodes))
	for i, n := range r.Frame.Nodes {
		ids[i] = n.ID
	}
	slices.Sort(ids)
	return ids
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, cfg Config) (*Server, http.Handler) {
	t.Helper()
	cfg.Logger = quietLogger()
	s := New(cfg)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code errors.Code) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	got := decode[errorResponse](t, rec)
	if got.Code != code {
		t.Errorf("code = %s, want %s", got.Code, code)
	}
}

func createSession(t *testing.T, h http.Handler) testResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/sessions", testDocument)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	return decode[testResponse](t, rec)
}

func TestHealthAndViews(t *testing.T) {
	_, h := newTestServer(t, Config{})

	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/views", "")
	views := decode[[]struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}](t, rec)
	var ids []string
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	if !slices.Equal(ids, []string{"default", "snippet", "taxonomy"}) {
		t.Errorf("views = %v", ids)
	}
}

func TestCreateSession(t *testing.T) {
	_, h := newTestServer(t, Config{})

	resp := createSession(t, h)
	if resp.ID == "" || resp.View != "default" || resp.Frame.View != "default" {
		t.Errorf("response = %+v", resp)
	}
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"article", "page"}) {
		t.Errorf("nodes = %v", got)
	}
	if len(resp.Frame.Edges) != 1 || resp.Frame.Edges[0].ID != "article-rel-page" {
		t.Errorf("edges = %+v", resp.Frame.Edges)
	}
	if !resp.State.IncludeRichText {
		t.Error("rich text edges should be on by default")
	}

	rec := do(t, h, http.MethodGet, "/api/sessions/"+resp.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decode[testResponse](t, rec); got.ID != resp.ID {
		t.Errorf("get id = %q", got.ID)
	}

	rec = do(t, h, http.MethodGet, "/api/sessions", "")
	if list := decode[[]sessionSummary](t, rec); len(list) != 1 || list[0].ID != resp.ID {
		t.Errorf("list = %+v", list)
	}
}

func TestCreateSessionErrors(t *testing.T) {
	_, h := newTestServer(t, Config{})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"invalid document", "/api/sessions", `{"contentTypes": []}`, http.StatusBadRequest, errors.ErrCodeInvalidDocument},
		{"no document", "/api/sessions", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown view", "/api/sessions?view=tree", testDocument, http.StatusBadRequest, errors.ErrCodeInvalidView},
		{"snapshots off", "/api/sessions?snapshot=prod", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, do(t, h, http.MethodPost, tt.path, tt.body), tt.status, tt.code)
		})
	}
}

func TestUnknownSession(t *testing.T) {
	_, h := newTestServer(t, Config{})
	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/sessions/nope"},
		{http.MethodDelete, "/api/sessions/nope"},
		{http.MethodPost, "/api/sessions/nope/expand-all"},
		{http.MethodPost, "/api/sessions/nope/nodes/article/toggle"},
		{http.MethodGet, "/api/sessions/nope/nodes/article/rows"},
	} {
		expectError(t, do(t, h, req.method, req.path, ""), http.StatusNotFound, errors.ErrCodeSessionNotFound)
	}
}

func TestNodeOperations(t *testing.T) {
	_, h := newTestServer(t, Config{})
	id := createSession(t, h).ID
	base := "/api/sessions/" + id

	rec := do(t, h, http.MethodPost, base+"/nodes/article/toggle", "")
	resp := decode[testResponse](t, rec)
	if !slices.Equal(resp.State.Expanded, []string{"article"}) {
		t.Errorf("expanded after toggle = %v", resp.State.Expanded)
	}

	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/nodes/page/isolate", ""))
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"page"}) {
		t.Errorf("isolated nodes = %v", got)
	}
	if resp.State.Isolation == nil {
		t.Error("isolation missing from state")
	}

	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/reset", ""))
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"article", "page"}) {
		t.Errorf("nodes after reset = %v", got)
	}
	if len(resp.State.Expanded) != 0 || resp.State.Isolation != nil {
		t.Errorf("state after reset = %+v", resp.State)
	}

	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/nodes/page/related", ""))
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"article", "page"}) {
		t.Errorf("related nodes = %v", got)
	}

	expectError(t, do(t, h, http.MethodPost, base+"/nodes/ghost/toggle", ""), http.StatusNotFound, errors.ErrCodeNotFound)
}

func TestSessionOperations(t *testing.T) {
	_, h := newTestServer(t, Config{})
	id := createSession(t, h).ID
	base := "/api/sessions/" + id

	resp := decode[testResponse](t, do(t, h, http.MethodPost, base+"/expand-all", ""))
	slices.Sort(resp.State.Expanded)
	if !slices.Equal(resp.State.Expanded, []string{"article", "page"}) {
		t.Errorf("expanded = %v", resp.State.Expanded)
	}

	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/collapse-all", ""))
	if len(resp.State.Expanded) != 0 {
		t.Errorf("expanded after collapse = %v", resp.State.Expanded)
	}

	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/rich-text?include=false", ""))
	if resp.State.IncludeRichText {
		t.Error("include=false ignored")
	}
	resp = decode[testResponse](t, do(t, h, http.MethodPost, base+"/rich-text", ""))
	if !resp.State.IncludeRichText {
		t.Error("toggle did not re-enable rich text")
	}
	expectError(t, do(t, h, http.MethodPost, base+"/rich-text?include=maybe", ""), http.StatusBadRequest, errors.ErrCodeInvalidInput)

	resp = decode[testResponse](t, do(t, h, http.MethodPut, base+"/view/snippet", ""))
	if resp.View != "snippet" || resp.Frame.View != "snippet" {
		t.Errorf("view = %q / %q", resp.View, resp.Frame.View)
	}
	expectError(t, do(t, h, http.MethodPut, base+"/view/tree", ""), http.StatusBadRequest, errors.ErrCodeInvalidView)

	if rec := do(t, h, http.MethodDelete, base, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	expectError(t, do(t, h, http.MethodGet, base, ""), http.StatusNotFound, errors.ErrCodeSessionNotFound)
}

func TestRowsAndDOT(t *testing.T) {
	_, h := newTestServer(t, Config{})
	id := createSession(t, h).ID
	base := "/api/sessions/" + id

	rec := do(t, h, http.MethodGet, base+"/nodes/article/rows", "")
	rows := decode[[]struct {
		Name      string `json:"name"`
		KindLabel string `json:"typeLabel"`
	}](t, rec)
	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	if !slices.Equal(names, []string{"Title", "Related", "Meta"}) {
		t.Errorf("row names = %v", names)
	}
	expectError(t, do(t, h, http.MethodGet, base+"/nodes/ghost/rows", ""), http.StatusNotFound, errors.ErrCodeNotFound)

	rec = do(t, h, http.MethodGet, base+"/dot", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "digraph G {") {
		t.Errorf("dot = %d %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"article" -> "page"`) {
		t.Errorf("dot missing edge:\n%s", rec.Body.String())
	}
}

func TestCreateFromSnapshot(t *testing.T) {
	store, err := snapshot.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := mgio.DecodeDocument([]byte(testDocument))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), "prod", doc); err != nil {
		t.Fatal(err)
	}

	_, h := newTestServer(t, Config{Snapshots: store})
	rec := do(t, h, http.MethodPost, "/api/sessions?snapshot=prod", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[testResponse](t, rec).nodeIDs(); !slices.Equal(got, []string{"article", "page"}) {
		t.Errorf("nodes = %v", got)
	}

	expectError(t, do(t, h, http.MethodPost, "/api/sessions?snapshot=staging", ""), http.StatusNotFound, errors.ErrCodeSnapshotNotFound)
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestReloadReseedsFileSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	writeFile(t, path, testDocument)

	s, h := newTestServer(t, Config{WatchFile: path})
	fromFile := createSession(t, h)
	fromBody := decode[testResponse](t, do(t, h, http.MethodPost, "/api/sessions", testDocument))

	// Expansion state survives a reseed.
	do(t, h, http.MethodPost, "/api/sessions/"+fromFile.ID+"/nodes/article/toggle", "")

	writeFile(t, path, testDocumentWithAuthor)
	n, err := s.reload()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("reseeded %d sessions, want 1", n)
	}

	resp := decode[testResponse](t, do(t, h, http.MethodGet, "/api/sessions/"+fromFile.ID, ""))
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"article", "author", "page"}) {
		t.Errorf("file session nodes = %v", got)
	}
	if !slices.Equal(resp.State.Expanded, []string{"article"}) {
		t.Errorf("expanded after reseed = %v", resp.State.Expanded)
	}

	resp = decode[testResponse](t, do(t, h, http.MethodGet, "/api/sessions/"+fromBody.ID, ""))
	if got := resp.nodeIDs(); !slices.Equal(got, []string{"article", "page"}) {
		t.Errorf("body session nodes = %v", got)
	}

	// A broken file leaves sessions alone.
	writeFile(t, path, "{")
	if _, err := s.reload(); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("reload err = %v", err)
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	writeFile(t, path, testDocument)

	s, h := newTestServer(t, Config{WatchFile: path, Watch: true})
	id := createSession(t, h).ID

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFile(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watchFile: %v", err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		writeFile(t, path, testDocumentWithAuthor)
		time.Sleep(200 * time.Millisecond)

		resp := decode[testResponse](t, do(t, h, http.MethodGet, "/api/sessions/"+id, ""))
		if len(resp.Frame.Nodes) == 3 {
			return
		}
	}
	t.Fatal("session was not reseeded after the file changed")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidDocument, http.StatusBadRequest},
		{errors.ErrCodeInvalidView, http.StatusBadRequest},
		{errors.ErrCodeSessionNotFound, http.StatusNotFound},
		{errors.ErrCodeSnapshotNotFound, http.StatusNotFound},
		{errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{errors.ErrCodeRateLimited, http.StatusTooManyRequests},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
