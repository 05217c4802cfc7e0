// Package engine runs the full trace visualization pipeline: load the
// node list, resolve references, extract trace records, build and layer
// the dependency graph, infer ancestry, and project the result into a
// render document.
package engine

import (
	"path/filepath"

	"gtv/internal/ancestry"
	"gtv/internal/errors"
	"gtv/internal/graph"
	"gtv/internal/loader"
	"gtv/internal/logging"
	"gtv/internal/nodestore"
	"gtv/internal/render"
	"gtv/internal/trace"
)

// Engine coordinates the pipeline stages.
type Engine struct {
	logger *logging.Logger
}

// New creates an engine
func New(logger *logging.Logger) *Engine {
	return &Engine{logger: logger}
}

// Report is the outcome of a pipeline run. Warnings collect every
// non-fatal condition the stages reported, in stage order.
type Report struct {
	Document *render.Document
	Records  []trace.Record
	Ancestry []ancestry.Edge
	Warnings []errors.Warning
}

// Run executes the pipeline for one input file. Any stage error is fatal
// and carries a stable error code; warnings never abort the run.
func (e *Engine) Run(inputPath string) (*Report, error) {
	nodes, err := loader.Load(inputPath)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("node list loaded", "path", inputPath, "nodes", len(nodes))

	store, err := nodestore.Resolve(nodes)
	if err != nil {
		return nil, err
	}

	extracted := trace.Extract(store)
	e.logger.Debug("traces extracted",
		"records", len(extracted.Records),
		"warnings", len(extracted.Warnings),
	)

	g, err := graph.Build(store)
	if err != nil {
		return nil, err
	}

	inferred := ancestry.Infer(store, g)
	e.logger.Debug("ancestry inferred",
		"edges", len(inferred.Edges),
		"warnings", len(inferred.Warnings),
	)

	report := &Report{
		Document: render.BuildDocument(g, inferred.Edges, filepath.Base(inputPath)),
		Records:  extracted.Records,
		Ancestry: inferred.Edges,
	}
	report.Warnings = append(report.Warnings, extracted.Warnings...)
	report.Warnings = append(report.Warnings, inferred.Warnings...)

	for _, w := range report.Warnings {
		e.logger.Warn(w.Message, "code", string(w.Code), "node", w.Node)
	}

	e.logger.Info("pipeline complete",
		"models", countKind(report.Document, "model"),
		"traces", countKind(report.Document, "trace"),
		"edges", len(report.Document.Edges),
	)
	return report, nil
}

func countKind(doc *render.Document, kind string) int {
	n := 0
	for _, node := range doc.Nodes {
		if node.Kind == kind {
			n++
		}
	}
	return n
}
