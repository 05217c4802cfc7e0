// Package model defines the resolved in-memory entities of one trace run:
// metamodels, models, transformations, executions and the trace records they
// produce. All entities are created once during resolution and never mutated.
package model

// AbstractionTag classifies a model along the MDA abstraction axis.
// This is a semantic label on the model, not the BFS layout level.
type AbstractionTag string

const (
	// PIM is a platform-independent model
	PIM AbstractionTag = "PIM"
	// PSM is a platform-specific model
	PSM AbstractionTag = "PSM"
	// Code is generated target code
	Code AbstractionTag = "Code"
)

// MetaModel is a named schema that models conform to.
type MetaModel struct {
	Index int
	Name  string
	ID    string
}

// Model is a named instance conforming to exactly one metamodel.
type Model struct {
	Index      int
	Name       string
	Tag        AbstractionTag
	ConformsTo *MetaModel
	// In lists the transformations this model feeds into.
	In []*Transformation
}

// Transformation is a named mapping from input models to one output model.
type Transformation struct {
	Index  int
	Name   string
	Inputs []*Model
	Output *Model
	Execs  []*TransformationExecution
}

// TransformationExecution is one concrete run of a transformation.
// Multiple executions of the same transformation represent alternative or
// versioned runs.
type TransformationExecution struct {
	Index          int
	Name           string
	Transformation *Transformation
	Generates      *TraceModel
}

// TraceModel is the trace container produced by exactly one execution.
type TraceModel struct {
	Index      int
	Name       string
	ConformsTo *MetaModel
	// Version groups traces belonging to one end-to-end design path.
	// HasVersion distinguishes an absent tag from version 0.
	Version    int
	HasVersion bool
	// Ancestor points at the trace this one evolved from, when recorded.
	Ancestor *TraceModel
	Owner    *TransformationExecution
	// Rules may be empty: a minimal trace is valid and intentional.
	Rules []TracedRule
}

// TracedRule is a named unit of transformation logic.
type TracedRule struct {
	Name   string
	Intent Intent
	Links  []TraceLink
}

// Intent records why a rule exists, with named parameters.
type Intent struct {
	Name   string
	Params []Param
}

// Param is one intent parameter. Kept as an ordered pair list so
// extraction output is deterministic.
type Param struct {
	Name  string
	Value string
}

// LinkType is the closed set of trace link kinds.
type LinkType string

const (
	LinkTransforms LinkType = "transforms"
	LinkCopies     LinkType = "copies"
	LinkGenerates  LinkType = "generates"
	LinkDerives    LinkType = "derives"
)

// TraceLink is a directed mapping from a source element to a target one.
// Granularity varies: model-level links carry no paths, element-level links
// carry paths, attribute-level links carry paths and attributes.
type TraceLink struct {
	Name       string
	Source     string
	Target     string
	SourceAttr string
	TargetAttr string
	Type       LinkType
	// Rule holds free-text domain rule metadata, e.g. a derivation formula.
	Rule string
}

// Transformation returns the transformation whose execution generated this
// trace, or nil for an unowned trace.
func (t *TraceModel) Transformation() *Transformation {
	if t.Owner == nil {
		return nil
	}
	return t.Owner.Transformation
}
