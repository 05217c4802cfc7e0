// Package trace extracts structured records from the resolved node store:
// one record per trace model, carrying its owning transformation, the
// surrounding input/output models, version lineage fields and every traced
// rule with its intent and links.
package trace

import (
	"gtv/internal/errors"
	"gtv/internal/model"
	"gtv/internal/nodestore"
)

// Record is the extraction result for one trace model.
type Record struct {
	Trace *model.TraceModel

	// Transformation is the name of the transformation whose execution
	// generated this trace; empty for an unowned trace.
	Transformation string
	Execution      string
	InputModels    []string
	OutputModels   []string

	Version    int
	HasVersion bool
	// Ancestor names the trace this one evolved from, when recorded.
	Ancestor string

	Rules []RuleRecord
}

// RuleRecord is the extracted view of one traced rule.
type RuleRecord struct {
	Name   string
	Intent string
	Params []model.Param
	Links  []model.TraceLink
}

// Result carries the extracted records and the non-fatal conditions seen
// along the way.
type Result struct {
	Records  []Record
	Warnings []errors.Warning
}

// Extract walks the store and produces one record per trace model, in node
// order. A trace with zero rules is valid and yields an empty rule list plus
// an IncompleteTrace warning.
func Extract(store *nodestore.Store) *Result {
	res := &Result{}

	for _, tm := range store.TraceModels {
		rec := Record{
			Trace:      tm,
			Version:    tm.Version,
			HasVersion: tm.HasVersion,
		}
		if tm.Ancestor != nil {
			rec.Ancestor = tm.Ancestor.Name
		}
		if owner := tm.Owner; owner != nil {
			rec.Execution = owner.Name
			if t := owner.Transformation; t != nil {
				rec.Transformation = t.Name
				for _, in := range t.Inputs {
					rec.InputModels = append(rec.InputModels, in.Name)
				}
				if t.Output != nil {
					rec.OutputModels = append(rec.OutputModels, t.Output.Name)
				}
			}
		}

		if len(tm.Rules) == 0 {
			res.Warnings = append(res.Warnings, errors.Warnf(errors.IncompleteTrace,
				tm.Name, "trace model has no traced rules"))
		}

		for _, rule := range tm.Rules {
			rr := RuleRecord{
				Name:   rule.Name,
				Intent: rule.Intent.Name,
				Params: rule.Intent.Params,
				Links:  rule.Links,
			}
			for _, link := range rule.Links {
				if link.Type == model.LinkDerives && link.Rule == "" {
					res.Warnings = append(res.Warnings, errors.Warnf(errors.DerivationRuleMissing,
						tm.Name, "link %q is tagged derives but carries no derivation rule", link.Name))
				}
			}
			rec.Rules = append(rec.Rules, rr)
		}

		res.Records = append(res.Records, rec)
	}

	return res
}
