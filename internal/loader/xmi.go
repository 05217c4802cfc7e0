package loader

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"gtv/internal/errors"
)

// xmiDocument matches the root of a trace XMI file. Only the ordered nodes
// children matter; the root element name varies per example set.
type xmiDocument struct {
	XMLName xml.Name
	Nodes   []xmiNode `xml:"nodes"`
}

type xmiNode struct {
	// xmi:type carries the discriminant, e.g. "mpm_trace:TraceModel".
	Type       string `xml:"type,attr"`
	Name       string `xml:"name,attr"`
	ConformsTo string `xml:"conformsTo,attr"`
	Identifier string `xml:"identifier,attr"`
	Level      string `xml:"level,attr"`

	// Current spelling: In on the model, Out on the transformation.
	In  string `xml:"In,attr"`
	Out string `xml:"Out,attr"`
	// Legacy spelling: IN/OUT both on the transformation.
	LegacyIn  string `xml:"IN,attr"`
	LegacyOut string `xml:"OUT,attr"`

	Exec      string `xml:"exec,attr"`
	Generates string `xml:"generates,attr"`
	Version   string `xml:"version,attr"`
	Ancestor  string `xml:"ancestor,attr"`

	Contains []xmiRule `xml:"contains"`
}

type xmiRule struct {
	Name    string      `xml:"name,attr"`
	Intents []xmiIntent `xml:"intents"`
	Links   []xmiLink   `xml:"traceLinks"`
}

type xmiIntent struct {
	Name   string     `xml:"name,attr"`
	Params []xmiParam `xml:"params"`
}

type xmiParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmiLink struct {
	Name       string `xml:"name,attr"`
	Source     string `xml:"source,attr"`
	Target     string `xml:"target,attr"`
	SourceAttr string `xml:"sourceAttribute,attr"`
	TargetAttr string `xml:"targetAttribute,attr"`
	Type       string `xml:"type,attr"`
	Rule       string `xml:"rule,attr"`
}

// DecodeXMI decodes an XMI trace document into raw node records.
func DecodeXMI(r io.Reader) ([]Node, error) {
	var doc xmiDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ParseFailed, "decoding XMI document", err)
	}

	nodes := make([]Node, 0, len(doc.Nodes))
	for idx, raw := range doc.Nodes {
		node, err := convertXMINode(idx, raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// normalizeKind strips the namespace prefix from a discriminant,
// e.g. "mpm_trace:TraceModel" -> TraceModel.
func normalizeKind(t string) Kind {
	if colon := strings.LastIndexByte(t, ':'); colon >= 0 {
		t = t[colon+1:]
	}
	return Kind(t)
}

func convertXMINode(idx int, raw xmiNode) (Node, error) {
	node := Node{
		Index: idx,
		Kind:  normalizeKind(raw.Type),
		Name:  raw.Name,
		Tag:   raw.Level,
		ID:    raw.Identifier,
	}

	refs := []struct {
		attr string
		dst  *[]int
	}{
		{raw.ConformsTo, &node.ConformsTo},
		{raw.In, &node.In},
		{raw.LegacyIn, &node.Inputs},
		{raw.Out, &node.Out},
		{raw.LegacyOut, &node.Out},
		{raw.Exec, &node.Exec},
		{raw.Generates, &node.Generates},
		{raw.Ancestor, &node.Ancestor},
	}
	for _, ref := range refs {
		parsed, err := parseRefList(ref.attr)
		if err != nil {
			return Node{}, errors.Newf(errors.ParseFailed,
				"node %d (%s): %v", idx, raw.Name, err)
		}
		*ref.dst = append(*ref.dst, parsed...)
	}

	// On transformations the legacy IN spelling names the inputs directly.
	if node.Kind == KindTransformation && len(node.In) > 0 {
		node.Inputs = append(node.Inputs, node.In...)
		node.In = nil
	}

	if raw.Version != "" {
		v, err := strconv.Atoi(raw.Version)
		if err != nil {
			return Node{}, errors.Newf(errors.ParseFailed,
				"node %d (%s): version %q is not an integer", idx, raw.Name, raw.Version)
		}
		node.Version = &v
	}

	for _, rule := range raw.Contains {
		node.Rules = append(node.Rules, convertXMIRule(rule))
	}
	return node, nil
}

func convertXMIRule(raw xmiRule) Rule {
	rule := Rule{Name: raw.Name}
	for _, intent := range raw.Intents {
		conv := Intent{Name: intent.Name}
		for _, p := range intent.Params {
			conv.Params = append(conv.Params, Param{Name: p.Name, Value: p.Value})
		}
		rule.Intents = append(rule.Intents, conv)
	}
	for _, link := range raw.Links {
		rule.Links = append(rule.Links, Link{
			Name:       link.Name,
			Source:     link.Source,
			Target:     link.Target,
			SourceAttr: link.SourceAttr,
			TargetAttr: link.TargetAttr,
			Type:       link.Type,
			Rule:       link.Rule,
		})
	}
	return rule
}
