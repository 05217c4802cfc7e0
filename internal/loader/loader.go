// Package loader decodes the on-disk node list into flat typed records.
// Two encodings are supported: XMI/XML with //@nodes.N reference paths and
// YAML node lists with plain integer references. The loader performs no
// reference resolution; that is the node store's job.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"gtv/internal/errors"
)

// Load reads and decodes the node list at path, choosing the decoder by
// file extension.
func Load(path string) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ParseFailed, "opening "+path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xmi", ".xml":
		return DecodeXMI(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return nil, errors.Newf(errors.ParseFailed,
			"unsupported input format %q (want .xmi, .xml, .yaml or .yml)", filepath.Ext(path))
	}
}

// parseRef converts one //@nodes.N reference path to a node index.
func parseRef(ref string) (int, bool) {
	dot := strings.LastIndexByte(ref, '.')
	if dot < 0 || dot == len(ref)-1 {
		return 0, false
	}
	idx := 0
	for _, r := range ref[dot+1:] {
		if r < '0' || r > '9' {
			return 0, false
		}
		idx = idx*10 + int(r-'0')
	}
	return idx, true
}

// parseRefList converts a space-separated reference attribute to node indices.
// A malformed reference fails the whole list so it can be reported with the
// owning node.
func parseRefList(attr string) ([]int, error) {
	if attr == "" {
		return nil, nil
	}
	fields := strings.Fields(attr)
	refs := make([]int, 0, len(fields))
	for _, field := range fields {
		idx, ok := parseRef(field)
		if !ok {
			return nil, errors.Newf(errors.ParseFailed, "malformed reference path %q", field)
		}
		refs = append(refs, idx)
	}
	return refs, nil
}
