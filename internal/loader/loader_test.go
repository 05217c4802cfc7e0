package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gtv/internal/errors"
)

const sampleXMI = `<?xml version="1.0" encoding="UTF-8"?>
<mpm_trace:TraceExample xmlns:xmi="http://www.omg.org/XMI" xmlns:mpm_trace="http://mpm/trace">
  <nodes xmi:type="mpm_trace:MetaModel" name="MM" identifier="mm-1"/>
  <nodes xmi:type="mpm_trace:Model" name="GlobalView" level="PIM" conformsTo="//@nodes.0" In="//@nodes.2"/>
  <nodes xmi:type="mpm_trace:Transformation" name="T1" Out="//@nodes.4" exec="//@nodes.3"/>
  <nodes xmi:type="mpm_trace:TransformationExecution" name="E1" generates="//@nodes.5"/>
  <nodes xmi:type="mpm_trace:Model" name="PSM" level="PSM" conformsTo="//@nodes.0"/>
  <nodes xmi:type="mpm_trace:TraceModel" name="Trace1" version="2" ancestor="//@nodes.6">
    <contains name="r1">
      <intents name="why"><params name="strategy" value="component_based"/></intents>
      <traceLinks name="l1" source="a/b" target="c/d" sourceAttribute="x" targetAttribute="y" type="derives" rule="y = x"/>
      <traceLinks name="l2" type="transforms"/>
    </contains>
  </nodes>
  <nodes xmi:type="mpm_trace:TraceModel" name="Trace0" version="1"/>
</mpm_trace:TraceExample>`

func TestDecodeXMI(t *testing.T) {
	nodes, err := DecodeXMI(strings.NewReader(sampleXMI))
	if err != nil {
		t.Fatalf("DecodeXMI: %v", err)
	}
	if len(nodes) != 7 {
		t.Fatalf("got %d nodes, want 7", len(nodes))
	}

	mm := nodes[0]
	if mm.Kind != KindMetaModel || mm.Name != "MM" || mm.ID != "mm-1" {
		t.Errorf("metamodel node = %+v", mm)
	}

	m := nodes[1]
	if m.Kind != KindModel || m.Tag != "PIM" {
		t.Errorf("model node = %+v", m)
	}
	if len(m.ConformsTo) != 1 || m.ConformsTo[0] != 0 {
		t.Errorf("conformsTo = %v", m.ConformsTo)
	}
	if len(m.In) != 1 || m.In[0] != 2 {
		t.Errorf("In = %v", m.In)
	}

	tr := nodes[2]
	if tr.Kind != KindTransformation {
		t.Fatalf("node 2 kind = %q", tr.Kind)
	}
	if len(tr.Out) != 1 || tr.Out[0] != 4 {
		t.Errorf("Out = %v", tr.Out)
	}
	if len(tr.Exec) != 1 || tr.Exec[0] != 3 {
		t.Errorf("Exec = %v", tr.Exec)
	}

	tm := nodes[5]
	if tm.Kind != KindTraceModel {
		t.Fatalf("node 5 kind = %q", tm.Kind)
	}
	if tm.Version == nil || *tm.Version != 2 {
		t.Errorf("version = %v", tm.Version)
	}
	if len(tm.Ancestor) != 1 || tm.Ancestor[0] != 6 {
		t.Errorf("ancestor = %v", tm.Ancestor)
	}
	if len(tm.Rules) != 1 {
		t.Fatalf("rules = %d, want 1", len(tm.Rules))
	}
	rule := tm.Rules[0]
	if rule.Name != "r1" || len(rule.Intents) != 1 || len(rule.Links) != 2 {
		t.Errorf("rule = %+v", rule)
	}
	if rule.Intents[0].Params[0].Value != "component_based" {
		t.Errorf("intent params = %+v", rule.Intents[0].Params)
	}
	link := rule.Links[0]
	if link.Type != "derives" || link.Rule != "y = x" || link.SourceAttr != "x" {
		t.Errorf("link = %+v", link)
	}
	// Model-level link has no paths.
	if rule.Links[1].Source != "" || rule.Links[1].Target != "" {
		t.Errorf("model-level link = %+v", rule.Links[1])
	}

	minimal := nodes[6]
	if len(minimal.Rules) != 0 {
		t.Errorf("minimal trace should carry no rules, got %d", len(minimal.Rules))
	}
	if minimal.Version == nil || *minimal.Version != 1 {
		t.Errorf("minimal version = %v", minimal.Version)
	}
}

func TestDecodeXMILegacySpellings(t *testing.T) {
	const legacy = `<?xml version="1.0"?>
<mpm_trace:TraceExample xmlns:xmi="http://www.omg.org/XMI" xmlns:mpm_trace="http://mpm/trace">
  <nodes xmi:type="mpm_trace:Model" name="A"/>
  <nodes xmi:type="mpm_trace:Transformation" name="T" IN="//@nodes.0" OUT="//@nodes.2" exec="//@nodes.3"/>
  <nodes xmi:type="mpm_trace:Model" name="B"/>
  <nodes xmi:type="mpm_trace:TransformationExecution" name="E" generates="//@nodes.4"/>
  <nodes xmi:type="mpm_trace:TraceModel" name="T0"/>
</mpm_trace:TraceExample>`

	nodes, err := DecodeXMI(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("DecodeXMI: %v", err)
	}
	tr := nodes[1]
	if len(tr.Inputs) != 1 || tr.Inputs[0] != 0 {
		t.Errorf("legacy IN not mapped to Inputs: %+v", tr)
	}
	if len(tr.Out) != 1 || tr.Out[0] != 2 {
		t.Errorf("legacy OUT not mapped: %v", tr.Out)
	}
}

func TestDecodeXMIErrors(t *testing.T) {
	t.Run("malformed reference", func(t *testing.T) {
		const bad = `<root><nodes xmi:type="m:Model" xmlns:xmi="http://www.omg.org/XMI" name="A" In="@garbage"/></root>`
		_, err := DecodeXMI(strings.NewReader(bad))
		if err == nil {
			t.Fatal("want error for malformed reference")
		}
		if errors.CodeOf(err) != errors.ParseFailed {
			t.Errorf("code = %q", errors.CodeOf(err))
		}
	})

	t.Run("non-integer version", func(t *testing.T) {
		const bad = `<root><nodes xmi:type="m:TraceModel" xmlns:xmi="http://www.omg.org/XMI" name="T" version="one"/></root>`
		_, err := DecodeXMI(strings.NewReader(bad))
		if err == nil || errors.CodeOf(err) != errors.ParseFailed {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("truncated document", func(t *testing.T) {
		_, err := DecodeXMI(strings.NewReader("<root><nodes"))
		if err == nil || errors.CodeOf(err) != errors.ParseFailed {
			t.Errorf("err = %v", err)
		}
	})
}

const sampleYAML = `nodes:
  - kind: MetaModel
    name: MM
    identifier: mm-1
  - kind: Model
    name: GlobalView
    tag: PIM
    conformsTo: 0
    in: [2]
  - kind: Transformation
    name: T1
    out: 4
    exec: [3]
  - kind: TransformationExecution
    name: E1
    generates: 5
  - kind: Model
    name: PSM
    tag: PSM
    conformsTo: 0
  - kind: TraceModel
    name: Trace1
    version: 1
    contains:
      - name: r1
        intents:
          - name: why
            params:
              - name: strategy
                value: component_based
        traceLinks:
          - name: l1
            source: a/b
            target: c/d
            type: copies
`

func TestDecodeYAML(t *testing.T) {
	nodes, err := DecodeYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if len(nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(nodes))
	}

	m := nodes[1]
	if m.Kind != KindModel || m.Tag != "PIM" {
		t.Errorf("model = %+v", m)
	}
	if len(m.ConformsTo) != 1 || m.ConformsTo[0] != 0 {
		t.Errorf("scalar reference not accepted: %v", m.ConformsTo)
	}
	if len(m.In) != 1 || m.In[0] != 2 {
		t.Errorf("sequence reference not accepted: %v", m.In)
	}

	tm := nodes[5]
	if tm.Version == nil || *tm.Version != 1 {
		t.Errorf("version = %v", tm.Version)
	}
	if len(tm.Rules) != 1 || tm.Rules[0].Links[0].Type != "copies" {
		t.Errorf("rules = %+v", tm.Rules)
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()

	xmiPath := filepath.Join(dir, "trace.xmi")
	if err := os.WriteFile(xmiPath, []byte(sampleXMI), 0644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "trace.yaml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(xmiPath); err != nil {
		t.Errorf("Load(.xmi): %v", err)
	}
	if _, err := Load(yamlPath); err != nil {
		t.Errorf("Load(.yaml): %v", err)
	}

	txtPath := filepath.Join(dir, "trace.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(txtPath); err == nil {
		t.Error("Load(.txt) should fail")
	}

	if _, err := Load(filepath.Join(dir, "missing.xmi")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"//@nodes.0", 0, true},
		{"//@nodes.27", 27, true},
		{"//@nodes.", 0, false},
		{"garbage", 0, false},
		{"//@nodes.x1", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseRef(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseRef(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
