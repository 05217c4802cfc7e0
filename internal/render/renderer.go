// Package render projects the annotated trace graph into a self-contained
// interactive HTML artifact.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"gtv/internal/config"
	"gtv/internal/logging"
	"gtv/internal/version"
)

// Renderer writes visualization artifacts according to the output config.
type Renderer struct {
	cfg    config.OutputConfig
	logger *logging.Logger
}

// NewRenderer creates a renderer
func NewRenderer(cfg config.OutputConfig, logger *logging.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logger}
}

// OutputPath derives the artifact path for the given input file: the
// configured filename, or the input basename with an .html extension,
// placed in the output directory unless the name already carries one.
func (r *Renderer) OutputPath(inputPath string) string {
	return r.outputPath(inputPath, ".html")
}

func (r *Renderer) outputPath(inputPath, ext string) string {
	name := r.cfg.Filename
	if name == "" {
		base := filepath.Base(inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}
	if filepath.Dir(name) == "." {
		name = filepath.Join(r.cfg.Directory, name)
	}
	if r.cfg.Compress && !strings.HasSuffix(name, ".gz") {
		name += ".gz"
	}
	return name
}

// Write renders the document and writes it to the derived path, creating
// the output directory as needed. Returns the path written.
func (r *Renderer) Write(doc *Document, inputPath string) (string, error) {
	html, err := r.HTML(doc)
	if err != nil {
		return "", err
	}
	return r.writeArtifact(r.OutputPath(inputPath), html)
}

// WriteJSON writes the raw graph document as indented JSON instead of the
// viewer page, for scripting consumers.
func (r *Renderer) WriteJSON(doc *Document, inputPath string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')
	return r.writeArtifact(r.outputPath(inputPath, ".json"), data)
}

func (r *Renderer) writeArtifact(path string, artifact []byte) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	data := artifact
	if r.cfg.Compress {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(artifact); err != nil {
			return "", fmt.Errorf("compressing artifact: %w", err)
		}
		if err := zw.Close(); err != nil {
			return "", fmt.Errorf("compressing artifact: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}

	r.logger.Debug("artifact written",
		"path", path,
		"bytes", len(data),
		"compressed", r.cfg.Compress,
	)
	return path, nil
}

// HTML renders the document into the interactive viewer page.
func (r *Renderer) HTML(doc *Document) ([]byte, error) {
	deps, anc := doc.split()

	nodesJSON, err := json.Marshal(doc.Nodes)
	if err != nil {
		return nil, fmt.Errorf("encoding nodes: %w", err)
	}
	depsJSON, err := json.Marshal(emptyAsList(deps))
	if err != nil {
		return nil, fmt.Errorf("encoding edges: %w", err)
	}
	ancJSON, err := json.Marshal(emptyAsList(anc))
	if err != nil {
		return nil, fmt.Errorf("encoding ancestry edges: %w", err)
	}

	data := viewerData{
		Source:   doc.Source,
		ReportID: uuid.New().String(),
		Tool:     "gtv " + version.Info(),
		MaxLevel: doc.MaxLevel(),
		Nodes:    template.JS(nodesJSON),
		Deps:     template.JS(depsJSON),
		Ancestry: template.JS(ancJSON),
	}

	var buf bytes.Buffer
	if err := viewerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering viewer template: %w", err)
	}
	return buf.Bytes(), nil
}

// emptyAsList keeps empty edge sets rendering as [] rather than null.
func emptyAsList(edges []EdgeView) []EdgeView {
	if edges == nil {
		return []EdgeView{}
	}
	return edges
}
