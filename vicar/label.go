// Package vicar reads the keyword=value header of VICAR image label files.
//
// A label file begins with "LBLSIZE=<n>" and the first n bytes hold ASCII keyword/value pairs.
// Keywords before the first PROPERTY or TASK keyword belong to the system section; a
// PROPERTY='NAME' keyword opens a named property group and a TASK='NAME' keyword opens a named
// history task. Every following keyword belongs to the most recently opened group.
package vicar

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoLabelSize is returned when a file does not start with an LBLSIZE keyword.
	ErrNoLabelSize = errors.New("failed to find LBLSIZE in label file")
	// ErrNoKeywords is returned when a label header holds no keyword/value pairs.
	ErrNoKeywords = errors.New("failed to find header labels in label file")

	labelSizePattern = regexp.MustCompile(`LBLSIZE\s*=\s*(\d+)`)
	keywordPattern   = regexp.MustCompile(`\s*([A-Z][A-Z_0-9]*)\s*=\s*((?:'(?:[^']*(?:'')?)*')|\([^)]+\)|\S+)`)
)

// Keywords maps a keyword to its value with surrounding quotes removed.
type Keywords map[string]string

// Groups is an ordered set of named keyword groups.
type Groups struct {
	names  []string
	groups map[string]Keywords
}

func newGroups() *Groups {
	return &Groups{groups: map[string]Keywords{}}
}

// open starts a new group. A repeated name replaces the earlier group but keeps its position.
func (g *Groups) open(name string) Keywords {
	if _, ok := g.groups[name]; !ok {
		g.names = append(g.names, name)
	}
	kw := Keywords{}
	g.groups[name] = kw
	return kw
}

// Names returns the group names in the order they appear in the label.
func (g *Groups) Names() []string {
	return append([]string(nil), g.names...)
}

// Get returns the keywords of the named group.
func (g *Groups) Get(name string) (Keywords, bool) {
	kw, ok := g.groups[name]
	return kw, ok
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.names)
}

// Label is the parsed header of one label file. It is read-only once parsed.
type Label struct {
	System     Keywords
	Properties *Groups
	History    *Groups
}

// CoordinateSystems returns the property groups that describe a coordinate system, keyed by
// their COORDINATE_SYSTEM_NAME. When two groups declare the same name the first one in label
// order wins.
func (l *Label) CoordinateSystems() map[string]map[string]string {
	systems := map[string]map[string]string{}
	for _, name := range l.Properties.names {
		group := l.Properties.groups[name]
		csName, ok := group[KeywordCoordinateSystemName]
		if !ok {
			continue
		}
		if _, seen := systems[csName]; seen {
			continue
		}
		systems[csName] = group
	}
	return systems
}

// ReadFile reads and parses the label at the start of the named file.
func ReadFile(path string) (*Label, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read label file %q", path)
	}
	label, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "label file %q", path)
	}
	return label, nil
}

// Parse parses a label from the raw bytes of a label file. Only the first LBLSIZE bytes are
// examined; any image data following the header is ignored.
func Parse(data []byte) (*Label, error) {
	header, err := labelHeader(data)
	if err != nil {
		return nil, err
	}
	return ParseHeader(header)
}

func labelHeader(data []byte) (string, error) {
	match := labelSizePattern.FindSubmatch(data)
	if match == nil {
		return "", ErrNoLabelSize
	}
	size, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return "", errors.Wrapf(err, "invalid LBLSIZE %q", match[1])
	}
	if size > len(data) {
		size = len(data)
	}
	return string(data[:size]), nil
}

// ParseHeader tokenizes the ASCII header text of a label.
func ParseHeader(header string) (*Label, error) {
	matches := keywordPattern.FindAllStringSubmatch(header, -1)
	if len(matches) == 0 {
		return nil, ErrNoKeywords
	}

	tok := newTokenizer()
	for _, match := range matches {
		tok.feed(unquote(match[1]), unquote(match[2]))
	}
	return tok.label, nil
}

// unquote strips surrounding double then single quotes from a keyword or value.
func unquote(s string) string {
	return strings.Trim(strings.Trim(s, `"`), `'`)
}
