package render

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"gtv/internal/config"
	"gtv/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func sampleDocument() *Document {
	return &Document{
		Source: "pipeline.xmi",
		Nodes: []NodeView{
			{ID: "model.0", Name: "GlobalView", Kind: "model", Tag: "PIM", Level: 0},
			{ID: "trace.3", Name: "Trace1", Kind: "trace", Tag: "TraceModel", Level: 1, Version: "1", Transformation: "GV2PSM", RuleCount: 2},
			{ID: "model.1", Name: "Arduino_PSM", Kind: "model", Tag: "PSM", Level: 2},
			{ID: "trace.4", Name: "Trace1v2", Kind: "trace", Tag: "TraceModel", Level: 1, Version: "2", Transformation: "GV2PSM", RuleCount: 2},
		},
		Edges: []EdgeView{
			{Source: "model.0", Target: "trace.3", Kind: EdgeDependency},
			{Source: "trace.3", Target: "model.1", Kind: EdgeDependency},
			{Source: "trace.3", Target: "trace.4", Kind: EdgeAncestryVersion},
		},
	}
}

func TestHTMLContainsGraphData(t *testing.T) {
	r := NewRenderer(config.OutputConfig{}, testLogger())

	html, err := r.HTML(sampleDocument())
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	page := string(html)

	for _, want := range []string{
		"GlobalView", "Arduino_PSM", "Trace1",
		"Source: pipeline.xmi",
		`"kind":"ancestry-version"`,
		"d3.v7.min.js",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestHTMLStampsReportID(t *testing.T) {
	r := NewRenderer(config.OutputConfig{}, testLogger())
	doc := sampleDocument()

	a, err := r.HTML(doc)
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	b, err := r.HTML(doc)
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	if !strings.Contains(string(a), `name="report-id"`) {
		t.Error("rendered page missing report-id meta tag")
	}
	if bytes.Equal(a, b) {
		t.Error("expected distinct report ids across runs")
	}
}

func TestHTMLEmptyEdgeSetsRenderAsLists(t *testing.T) {
	r := NewRenderer(config.OutputConfig{}, testLogger())
	doc := &Document{
		Source: "single.xmi",
		Nodes:  []NodeView{{ID: "model.0", Name: "Lonely", Kind: "model", Tag: "PIM"}},
	}

	html, err := r.HTML(doc)
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	page := string(html)

	if strings.Contains(page, "= null;") {
		t.Error("empty edge sets should render as [], not null")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.OutputConfig
		in   string
		want string
	}{
		{
			name: "default derives from input basename",
			cfg:  config.OutputConfig{Directory: "output_g_trace"},
			in:   "models/pipeline.xmi",
			want: filepath.Join("output_g_trace", "pipeline.html"),
		},
		{
			name: "configured filename wins",
			cfg:  config.OutputConfig{Directory: "out", Filename: "trace.html"},
			in:   "models/pipeline.xmi",
			want: filepath.Join("out", "trace.html"),
		},
		{
			name: "filename with directory bypasses output dir",
			cfg:  config.OutputConfig{Directory: "out", Filename: "custom/trace.html"},
			in:   "pipeline.xmi",
			want: filepath.Join("custom", "trace.html"),
		},
		{
			name: "compression appends gz",
			cfg:  config.OutputConfig{Directory: "out", Compress: true},
			in:   "pipeline.xmi",
			want: filepath.Join("out", "pipeline.html.gz"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(tt.cfg, testLogger())
			if got := r.OutputPath(tt.in); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteCreatesArtifact(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(config.OutputConfig{Directory: dir}, testLogger())

	path, err := r.Write(sampleDocument(), "pipeline.xmi")
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if path != filepath.Join(dir, "pipeline.html") {
		t.Errorf("unexpected artifact path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "GlobalView") {
		t.Error("artifact missing node data")
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(config.OutputConfig{Directory: dir}, testLogger())

	path, err := r.WriteJSON(sampleDocument(), "pipeline.xmi")
	if err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if path != filepath.Join(dir, "pipeline.json") {
		t.Errorf("unexpected artifact path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if doc.Source != "pipeline.xmi" || len(doc.Nodes) != 4 || len(doc.Edges) != 3 {
		t.Errorf("unexpected document contents: %+v", doc)
	}
}

func TestWriteCompressed(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(config.OutputConfig{Directory: dir, Compress: true}, testLogger())

	path, err := r.Write(sampleDocument(), "pipeline.xmi")
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.HasSuffix(path, ".html.gz") {
		t.Errorf("expected gzip suffix, got %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening artifact: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("artifact is not valid gzip: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompressing artifact: %v", err)
	}
	if !strings.Contains(string(data), "Source: pipeline.xmi") {
		t.Error("decompressed artifact missing source stamp")
	}
}

func TestBuildDocumentSplitsEdges(t *testing.T) {
	doc := sampleDocument()
	deps, anc := doc.split()

	if len(deps) != 2 {
		t.Errorf("expected 2 dependency edges, got %d", len(deps))
	}
	if len(anc) != 1 {
		t.Errorf("expected 1 ancestry edge, got %d", len(anc))
	}
	if doc.MaxLevel() != 2 {
		t.Errorf("MaxLevel() = %d, want 2", doc.MaxLevel())
	}

	// The node projection round-trips through JSON with the viewer field names.
	raw, err := json.Marshal(doc.Nodes[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"numRules":2`, `"transformation":"GV2PSM"`, `"version":"1"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("node JSON missing %q: %s", want, raw)
		}
	}
}
