package loader

// Kind discriminates the typed records of the input node list.
type Kind string

const (
	KindMetaModel      Kind = "MetaModel"
	KindModel          Kind = "Model"
	KindTransformation Kind = "Transformation"
	KindExecution      Kind = "TransformationExecution"
	KindTraceModel     Kind = "TraceModel"
)

// Node is one raw record of the flat input list. References are kept as
// node indices until the store resolves them into direct relationships.
type Node struct {
	Index int
	Kind  Kind
	Name  string

	// Model fields
	Tag        string // abstraction tag: PIM, PSM, Code
	ConformsTo []int
	In         []int // transformations this model feeds into

	// Transformation fields
	Inputs []int // legacy input reference spelled on the transformation
	Out    []int
	Exec   []int

	// Execution fields
	Generates []int

	// MetaModel fields
	ID string

	// TraceModel fields
	Version  *int
	Ancestor []int
	Rules    []Rule
}

// Rule is a traced rule carried as a containment child of its trace model.
type Rule struct {
	Name    string   `yaml:"name"`
	Intents []Intent `yaml:"intents"`
	Links   []Link   `yaml:"traceLinks"`
}

// Intent is a rule rationale with named parameters.
type Intent struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params"`
}

// Param is one intent parameter.
type Param struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Link is one trace link. Paths and attributes are optional depending on
// the link granularity.
type Link struct {
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	SourceAttr string `yaml:"sourceAttribute"`
	TargetAttr string `yaml:"targetAttribute"`
	Type       string `yaml:"type"`
	Rule       string `yaml:"rule"`
}
