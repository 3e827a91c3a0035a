package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/NVIDIA/clusterspec/pkg/tree"
)

// Event is one structural violation.
type Event struct {
	// Rule is the violated keyword, for example "required" or "enum".
	Rule string

	// Message is the validator's raw message.
	Message string

	// Path locates the offending node in the document.
	Path tree.Path
}

// Validate checks doc against the schema and returns the first violation, or nil when
// doc conforms. A non-nil error means validation could not run at all.
func (s *Schema) Validate(doc tree.Value) (*Event, error) {
	err := s.compiled.Validate(tree.ToAny(doc))
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("structural validation failed: %w", err)
	}

	leaf := firstLeaf(ve)
	path, err := tree.ParsePointer(leaf.InstanceLocation, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid instance location %q: %w", leaf.InstanceLocation, err)
	}

	return &Event{
		Rule:    keyword(leaf.KeywordLocation),
		Message: leaf.Message,
		Path:    path,
	}, nil
}

// firstLeaf follows the first cause down to the violation that produced it.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func keyword(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return location
}
