package stat

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// numPrefix matches the leading numeric part of a value the way parseFloat
// reads it: "12.5%" is 12.5, "abc" is nothing.
var numPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Num is a number the user typed as free text. It is parsed once when the
// value enters the program; text that does not start with a number reads as 0.
// A Num also remembers whether the field was left blank, which is what the
// comparison-side fallbacks look at.
type Num struct {
	v   float64
	set bool
}

// N returns a non-blank Num holding v.
func N(v float64) Num { return Num{v: v, set: true} }

// ParseNum parses user text. Thousands separators are ignored. Only the
// empty string is blank; whitespace counts as something typed and reads as 0.
func ParseNum(s string) Num {
	if s == "" {
		return Num{}
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	m := numPrefix.FindString(s)
	if m == "" {
		return Num{set: true}
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return Num{set: true}
	}
	return Num{v: f, set: true}
}

// Value returns the parsed number, 0 when blank or malformed.
func (n Num) Value() float64 { return n.v }

// Blank reports whether the field was empty.
func (n Num) Blank() bool { return !n.set }

// Or returns n, or fallback when n is blank.
func (n Num) Or(fallback Num) Num {
	if n.Blank() {
		return fallback
	}
	return n
}

func (n Num) String() string {
	if n.Blank() {
		return ""
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}

func (n Num) MarshalJSON() ([]byte, error) {
	if n.Blank() {
		return []byte(`""`), nil
	}
	return []byte(strconv.FormatFloat(n.v, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a string, a number or null. It never fails on
// content: anything that is not a number becomes 0.
func (n *Num) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*n = Num{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = ParseNum(s)
	default:
		*n = ParseNum(string(b))
	}
	return nil
}

func (n Num) MarshalYAML() (interface{}, error) {
	if n.Blank() {
		return "", nil
	}
	return n.v, nil
}

func (n *Num) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*n = Num{set: true}
		return nil
	}
	if node.Tag == "!!null" {
		*n = Num{}
		return nil
	}
	*n = ParseNum(node.Value)
	return nil
}
