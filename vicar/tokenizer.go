package vicar

// Keywords with structural meaning in a label header.
const (
	KeywordProperty             = "PROPERTY"
	KeywordTask                 = "TASK"
	KeywordCoordinateSystemName = "COORDINATE_SYSTEM_NAME"
	KeywordReferenceSystemName  = "REFERENCE_COORD_SYSTEM_NAME"
	KeywordOriginOffset         = "ORIGIN_OFFSET_VECTOR"
	KeywordOriginRotation       = "ORIGIN_ROTATION_QUATERNION"
)

// section is the state of the header tokenizer.
type section int

const (
	inSystem section = iota
	inProperty
	inTask
)

func (s section) String() string {
	switch s {
	case inSystem:
		return "SYSTEM"
	case inProperty:
		return "PROPERTY"
	case inTask:
		return "TASK"
	}
	return "UNKNOWN"
}

// transitions maps a structural keyword to the section it opens. Every other keyword leaves the
// section unchanged and is stored in the current group.
var transitions = map[string]section{
	KeywordProperty: inProperty,
	KeywordTask:     inTask,
}

type tokenizer struct {
	state section
	group string
	label *Label
}

func newTokenizer() *tokenizer {
	return &tokenizer{
		state: inSystem,
		label: &Label{System: Keywords{}, Properties: newGroups(), History: newGroups()},
	}
}

func (t *tokenizer) feed(keyword, value string) {
	if next, ok := transitions[keyword]; ok {
		t.state = next
		t.group = value
		t.groups().open(value)
		return
	}
	t.current()[keyword] = value
}

func (t *tokenizer) groups() *Groups {
	if t.state == inTask {
		return t.label.History
	}
	return t.label.Properties
}

func (t *tokenizer) current() Keywords {
	if t.state == inSystem {
		return t.label.System
	}
	return t.groups().groups[t.group]
}
