// Package nodestore resolves the flat node list into the direct object graph.
// Resolution runs in two passes: first every record is instantiated as its
// typed entity, then every reference field is replaced with the pointed-at
// entity. A reference to a missing index or to a node of the wrong type
// aborts the run.
package nodestore

import (
	"gtv/internal/errors"
	"gtv/internal/loader"
	"gtv/internal/model"
)

// Store owns the resolved entities for one run, in node-index order.
type Store struct {
	MetaModels      []*model.MetaModel
	Models          []*model.Model
	Transformations []*model.Transformation
	Executions      []*model.TransformationExecution
	TraceModels     []*model.TraceModel

	metaByIndex  map[int]*model.MetaModel
	modelByIndex map[int]*model.Model
	transByIndex map[int]*model.Transformation
	execByIndex  map[int]*model.TransformationExecution
	traceByIndex map[int]*model.TraceModel
}

// Resolve ingests raw node records and links every reference.
func Resolve(nodes []loader.Node) (*Store, error) {
	s := &Store{
		metaByIndex:  make(map[int]*model.MetaModel),
		modelByIndex: make(map[int]*model.Model),
		transByIndex: make(map[int]*model.Transformation),
		execByIndex:  make(map[int]*model.TransformationExecution),
		traceByIndex: make(map[int]*model.TraceModel),
	}

	// First pass: instantiate typed entities.
	for _, n := range nodes {
		switch n.Kind {
		case loader.KindMetaModel:
			mm := &model.MetaModel{Index: n.Index, Name: n.Name, ID: n.ID}
			s.MetaModels = append(s.MetaModels, mm)
			s.metaByIndex[n.Index] = mm
		case loader.KindModel:
			m := &model.Model{Index: n.Index, Name: n.Name, Tag: model.AbstractionTag(n.Tag)}
			s.Models = append(s.Models, m)
			s.modelByIndex[n.Index] = m
		case loader.KindTransformation:
			t := &model.Transformation{Index: n.Index, Name: n.Name}
			s.Transformations = append(s.Transformations, t)
			s.transByIndex[n.Index] = t
		case loader.KindExecution:
			e := &model.TransformationExecution{Index: n.Index, Name: n.Name}
			s.Executions = append(s.Executions, e)
			s.execByIndex[n.Index] = e
		case loader.KindTraceModel:
			tm := &model.TraceModel{Index: n.Index, Name: n.Name}
			if n.Version != nil {
				tm.Version = *n.Version
				tm.HasVersion = true
			}
			tm.Rules = convertRules(n.Rules)
			s.TraceModels = append(s.TraceModels, tm)
			s.traceByIndex[n.Index] = tm
		default:
			return nil, errors.Newf(errors.TypeMismatch,
				"node %d (%s): unknown node type %q", n.Index, n.Name, n.Kind)
		}
	}

	// Second pass: link references.
	for _, n := range nodes {
		if err := s.link(n); err != nil {
			return nil, err
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) link(n loader.Node) error {
	switch n.Kind {
	case loader.KindModel:
		m := s.modelByIndex[n.Index]
		for _, ref := range n.ConformsTo {
			mm, err := s.meta(n, "conformsTo", ref)
			if err != nil {
				return err
			}
			m.ConformsTo = mm
		}
		for _, ref := range n.In {
			t, err := s.transformation(n, "In", ref)
			if err != nil {
				return err
			}
			m.In = append(m.In, t)
			t.Inputs = append(t.Inputs, m)
		}

	case loader.KindTransformation:
		t := s.transByIndex[n.Index]
		for _, ref := range n.Inputs {
			m, err := s.model(n, "IN", ref)
			if err != nil {
				return err
			}
			t.Inputs = append(t.Inputs, m)
			m.In = append(m.In, t)
		}
		if len(n.Out) > 1 {
			return errors.Newf(errors.TypeMismatch,
				"node %d (%s): transformation declares %d outputs, at most one allowed",
				n.Index, n.Name, len(n.Out))
		}
		for _, ref := range n.Out {
			m, err := s.model(n, "Out", ref)
			if err != nil {
				return err
			}
			t.Output = m
		}
		for _, ref := range n.Exec {
			e, err := s.execution(n, "exec", ref)
			if err != nil {
				return err
			}
			t.Execs = append(t.Execs, e)
			e.Transformation = t
		}

	case loader.KindExecution:
		e := s.execByIndex[n.Index]
		for _, ref := range n.Generates {
			tm, err := s.trace(n, "generates", ref)
			if err != nil {
				return err
			}
			if tm.Owner != nil && tm.Owner != e {
				return errors.Newf(errors.TypeMismatch,
					"node %d (%s): trace model %q already generated by execution %q",
					n.Index, n.Name, tm.Name, tm.Owner.Name)
			}
			e.Generates = tm
			tm.Owner = e
		}

	case loader.KindTraceModel:
		tm := s.traceByIndex[n.Index]
		for _, ref := range n.ConformsTo {
			mm, err := s.meta(n, "conformsTo", ref)
			if err != nil {
				return err
			}
			tm.ConformsTo = mm
		}
		for _, ref := range n.Ancestor {
			anc, err := s.trace(n, "ancestor", ref)
			if err != nil {
				return err
			}
			tm.Ancestor = anc
		}
	}
	return nil
}

// validate enforces the structural invariants that hold by construction in
// well-formed inputs: a transformation owns at least one input and an output.
func (s *Store) validate() error {
	for _, t := range s.Transformations {
		if len(t.Inputs) == 0 || t.Output == nil {
			return errors.Newf(errors.OrphanedTransformation,
				"transformation %q (node %d) has %d inputs and %d outputs; at least one of each is required",
				t.Name, t.Index, len(t.Inputs), outputCount(t))
		}
	}
	return nil
}

func outputCount(t *model.Transformation) int {
	if t.Output == nil {
		return 0
	}
	return 1
}

func (s *Store) meta(n loader.Node, field string, ref int) (*model.MetaModel, error) {
	if mm, ok := s.metaByIndex[ref]; ok {
		return mm, nil
	}
	return nil, s.badRef(n, field, ref, "MetaModel")
}

func (s *Store) model(n loader.Node, field string, ref int) (*model.Model, error) {
	if m, ok := s.modelByIndex[ref]; ok {
		return m, nil
	}
	return nil, s.badRef(n, field, ref, "Model")
}

func (s *Store) transformation(n loader.Node, field string, ref int) (*model.Transformation, error) {
	if t, ok := s.transByIndex[ref]; ok {
		return t, nil
	}
	return nil, s.badRef(n, field, ref, "Transformation")
}

func (s *Store) execution(n loader.Node, field string, ref int) (*model.TransformationExecution, error) {
	if e, ok := s.execByIndex[ref]; ok {
		return e, nil
	}
	return nil, s.badRef(n, field, ref, "TransformationExecution")
}

func (s *Store) trace(n loader.Node, field string, ref int) (*model.TraceModel, error) {
	if tm, ok := s.traceByIndex[ref]; ok {
		return tm, nil
	}
	return nil, s.badRef(n, field, ref, "TraceModel")
}

// badRef distinguishes a dangling reference from one that lands on a node of
// the wrong type.
func (s *Store) badRef(n loader.Node, field string, ref int, want string) error {
	if kind, ok := s.kindAt(ref); ok {
		return errors.Newf(errors.TypeMismatch,
			"node %d (%s): reference %q targets node %d of type %s, want %s",
			n.Index, n.Name, field, ref, kind, want)
	}
	return errors.Newf(errors.UnresolvedReference,
		"node %d (%s): reference %q targets nonexistent node %d",
		n.Index, n.Name, field, ref)
}

func (s *Store) kindAt(ref int) (string, bool) {
	if _, ok := s.metaByIndex[ref]; ok {
		return "MetaModel", true
	}
	if _, ok := s.modelByIndex[ref]; ok {
		return "Model", true
	}
	if _, ok := s.transByIndex[ref]; ok {
		return "Transformation", true
	}
	if _, ok := s.execByIndex[ref]; ok {
		return "TransformationExecution", true
	}
	if _, ok := s.traceByIndex[ref]; ok {
		return "TraceModel", true
	}
	return "", false
}

func convertRules(raw []loader.Rule) []model.TracedRule {
	rules := make([]model.TracedRule, 0, len(raw))
	for _, r := range raw {
		rule := model.TracedRule{Name: r.Name}
		// The data model gives a rule exactly one intent; extra intents in
		// the input collapse to the first.
		if len(r.Intents) > 0 {
			intent := model.Intent{Name: r.Intents[0].Name}
			for _, p := range r.Intents[0].Params {
				intent.Params = append(intent.Params, model.Param{Name: p.Name, Value: p.Value})
			}
			rule.Intent = intent
		}
		for _, l := range r.Links {
			rule.Links = append(rule.Links, model.TraceLink{
				Name:       l.Name,
				Source:     l.Source,
				Target:     l.Target,
				SourceAttr: l.SourceAttr,
				TargetAttr: l.TargetAttr,
				Type:       model.LinkType(l.Type),
				Rule:       l.Rule,
			})
		}
		rules = append(rules, rule)
	}
	return rules
}
