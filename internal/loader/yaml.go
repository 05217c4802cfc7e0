package loader

import (
	"io"

	"gopkg.in/yaml.v3"

	"gtv/internal/errors"
)

// yamlDocument is the YAML node-list form of a trace file. References are
// plain node indices, either a scalar or a sequence.
type yamlDocument struct {
	Nodes []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	Kind       string   `yaml:"kind"`
	Name       string   `yaml:"name"`
	Tag        string   `yaml:"tag"`
	Identifier string   `yaml:"identifier"`
	ConformsTo refList  `yaml:"conformsTo"`
	In         refList  `yaml:"in"`
	Out        refList  `yaml:"out"`
	Exec       refList  `yaml:"exec"`
	Generates  refList  `yaml:"generates"`
	Version    *int     `yaml:"version"`
	Ancestor   refList  `yaml:"ancestor"`
	Contains   []Rule   `yaml:"contains"`
}

// refList accepts either a single index or a sequence of indices.
type refList []int

func (r *refList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var idx int
		if err := value.Decode(&idx); err != nil {
			return err
		}
		*r = refList{idx}
		return nil
	default:
		var idxs []int
		if err := value.Decode(&idxs); err != nil {
			return err
		}
		*r = refList(idxs)
		return nil
	}
}

// DecodeYAML decodes a YAML node list into raw node records.
func DecodeYAML(r io.Reader) ([]Node, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ParseFailed, "decoding YAML document", err)
	}

	nodes := make([]Node, 0, len(doc.Nodes))
	for idx, raw := range doc.Nodes {
		node := Node{
			Index:      idx,
			Kind:       normalizeKind(raw.Kind),
			Name:       raw.Name,
			Tag:        raw.Tag,
			ID:         raw.Identifier,
			ConformsTo: raw.ConformsTo,
			In:         raw.In,
			Out:        raw.Out,
			Exec:       raw.Exec,
			Generates:  raw.Generates,
			Version:    raw.Version,
			Ancestor:   raw.Ancestor,
			Rules:      raw.Contains,
		}
		// A transformation's own "in" names its inputs directly.
		if node.Kind == KindTransformation {
			node.Inputs, node.In = node.In, nil
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
