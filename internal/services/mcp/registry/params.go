package registry

import (
	"fmt"
	"strings"
)

// Param describes one string parameter of an operation.
type Param struct {
	Name        string
	Description string
	// Default is forwarded when an optional parameter is absent.
	Default string
	// Optional marks parameters the caller may omit.
	Optional bool
	// Options lists the documented accepted values. They are advisory and
	// never enforced.
	Options []string
}

// Required reports whether the caller must supply the parameter.
func (p Param) Required() bool {
	return !p.Optional
}

// Help renders the description shown to clients, including options and the
// default for optional parameters.
func (p Param) Help() string {
	var b strings.Builder
	b.WriteString(p.Description)
	if len(p.Options) > 0 {
		quoted := make([]string, len(p.Options))
		for i, option := range p.Options {
			quoted[i] = fmt.Sprintf("%q", option)
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString("choice of {")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString("}")
	}
	if p.Optional {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "default %q", p.Default)
	}
	return b.String()
}

// Args holds validated parameter values keyed by name. Every declared
// parameter is present: optional ones carry their default when omitted.
type Args map[string]string
