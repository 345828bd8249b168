package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation issue.
type Kind int

const (
	// Structural is a type, range, format or cardinality violation on one field.
	Structural Kind = iota
	// Referential is a superset or linked-workout reference that does not resolve.
	Referential
	// Semantic is structurally valid data flagged as implausible.
	Semantic
	// Unknown is a fault of the validator itself.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Referential:
		return "referential"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Fixed messages returned in Result.Errors.
const (
	MsgUnknown          = "Unknown validation error"
	MsgInvalidStructure = "Invalid workout data structure"
)

// ErrUnknown is returned by Parse when the validator faults on its input.
var ErrUnknown = errors.New(MsgUnknown)

// Issue is one diagnostic. Path is the dotted field path and is only set
// for structural issues.
type Issue struct {
	Kind    Kind
	Path    string
	Message string
}

// String renders the issue the way it appears in Result.Errors.
func (i Issue) String() string {
	if i.Kind == Structural {
		return i.Path + ": " + i.Message
	}
	return i.Message
}

// SchemaError carries every structural issue found in one document.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid workout session: " + e.Issues[0].String()
	}
	return fmt.Sprintf("invalid workout session: %s (and %d more)", e.Issues[0].String(), len(e.Issues)-1)
}

// Messages returns the issues as strings, in order.
func (e *SchemaError) Messages() []string {
	return messages(e.Issues)
}

func messages(issues []Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.String()
	}
	return out
}

// path is a field path under construction. Appending always copies so
// sibling paths never share a backing array.
type path []string

func (p path) key(k string) path {
	out := make(path, len(p), len(p)+1)
	copy(out, p)
	return append(out, k)
}

func (p path) index(i int) path {
	return p.key(fmt.Sprint(i))
}

func (p path) String() string {
	return strings.Join(p, ".")
}
