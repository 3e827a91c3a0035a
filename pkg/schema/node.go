package schema

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/NVIDIA/clusterspec/pkg/tree"
)

// Node is one schema node, reduced to the keywords the defaults engine and the error
// translator read. Every other keyword is left to the structural validator.
type Node struct {
	// Types lists the allowed JSON types. Empty means any type.
	Types []string

	// Properties maps declared property names to their subschema.
	Properties map[string]*Node

	// PropertyNames holds the declared property names in document order.
	PropertyNames []string

	// Required is the set of property names that must be present.
	Required sets.Set[string]

	// AdditionalProperties is false when undeclared keys are rejected.
	AdditionalProperties bool

	// Items is the array element schema, nil when the node declares none.
	Items *Items

	// Enum lists the allowed literal values, nil when unrestricted.
	Enum []tree.Value

	// Default is the literal used when the field is absent, nil when none is declared.
	Default tree.Value
}

// Items describes how array elements map onto schemas: either one schema for every
// element or a positional tuple.
type Items struct {
	Schema *Node
	Tuple  []*Node
}

// At returns the schema for element i. Indices past the end of a tuple share the last
// declared item schema.
func (it *Items) At(i int) (*Node, bool) {
	if it == nil {
		return nil, false
	}
	if it.Schema != nil {
		return it.Schema, true
	}
	if len(it.Tuple) == 0 || i < 0 {
		return nil, false
	}
	if i >= len(it.Tuple) {
		i = len(it.Tuple) - 1
	}
	return it.Tuple[i], true
}

// HasType reports whether t is one of the node's declared types.
func (n *Node) HasType(t string) bool {
	for _, nt := range n.Types {
		if nt == t {
			return true
		}
	}
	return false
}

// IsObject reports whether n describes an object. Nodes without a type that declare
// properties are treated as objects.
func (n *Node) IsObject() bool {
	if len(n.Types) == 0 {
		return len(n.Properties) > 0
	}
	return n.HasType("object")
}

// IsArray reports whether n describes an array. Nodes without a type that declare
// items are treated as arrays.
func (n *Node) IsArray() bool {
	if len(n.Types) == 0 {
		return n.Items != nil
	}
	return n.HasType("array")
}

// HasDefault reports whether n declares a default.
func (n *Node) HasDefault() bool {
	return n.Default != nil
}

// Property returns the subschema declared for name.
func (n *Node) Property(name string) (*Node, bool) {
	p, ok := n.Properties[name]
	return p, ok
}

func buildNode(v tree.Value, at string) (*Node, error) {
	n := &Node{
		Properties:           map[string]*Node{},
		Required:             sets.New[string](),
		AdditionalProperties: true,
	}

	switch t := v.(type) {
	case tree.Boolean:
		// Boolean schemas carry no keywords.
		return n, nil
	case *tree.Object:
		return n, n.fill(t, at)
	default:
		return nil, fmt.Errorf("%s: schema must be an object or a boolean, got %s", at, v.Kind())
	}
}

func (n *Node) fill(obj *tree.Object, at string) error {
	if tv, ok := obj.Get("type"); ok {
		types, err := stringList(tv)
		if err != nil {
			return fmt.Errorf("%s/type: %w", at, err)
		}
		n.Types = types
	}

	if pv, ok := obj.Get("properties"); ok {
		props, isObj := pv.(*tree.Object)
		if !isObj {
			return fmt.Errorf("%s/properties: must be an object", at)
		}
		for _, name := range props.Keys() {
			sub, _ := props.Get(name)
			child, err := buildNode(sub, at+"/properties/"+name)
			if err != nil {
				return err
			}
			n.Properties[name] = child
			n.PropertyNames = append(n.PropertyNames, name)
		}
	}

	if rv, ok := obj.Get("required"); ok {
		names, err := stringList(rv)
		if err != nil {
			return fmt.Errorf("%s/required: %w", at, err)
		}
		n.Required.Insert(names...)
	}

	if av, ok := obj.Get("additionalProperties"); ok {
		// A schema-valued additionalProperties still admits unknown keys.
		if b, isBool := av.(tree.Boolean); isBool {
			n.AdditionalProperties = bool(b)
		}
	}

	if iv, ok := obj.Get("items"); ok {
		items, err := buildItems(iv, at+"/items")
		if err != nil {
			return err
		}
		n.Items = items
	}

	if ev, ok := obj.Get("enum"); ok {
		arr, isArr := ev.(*tree.Array)
		if !isArr {
			return fmt.Errorf("%s/enum: must be an array", at)
		}
		n.Enum = make([]tree.Value, 0, arr.Len())
		for _, item := range arr.Items {
			n.Enum = append(n.Enum, tree.Clone(item))
		}
	}

	if dv, ok := obj.Get("default"); ok {
		n.Default = tree.Clone(dv)
	}

	return nil
}

func buildItems(v tree.Value, at string) (*Items, error) {
	arr, isTuple := v.(*tree.Array)
	if !isTuple {
		single, err := buildNode(v, at)
		if err != nil {
			return nil, err
		}
		return &Items{Schema: single}, nil
	}

	items := &Items{Tuple: make([]*Node, 0, arr.Len())}
	for i, item := range arr.Items {
		child, err := buildNode(item, fmt.Sprintf("%s/%d", at, i))
		if err != nil {
			return nil, err
		}
		items.Tuple = append(items.Tuple, child)
	}
	return items, nil
}

func stringList(v tree.Value) ([]string, error) {
	switch t := v.(type) {
	case tree.String:
		return []string{string(t)}, nil
	case *tree.Array:
		out := make([]string, 0, t.Len())
		for _, item := range t.Items {
			s, ok := item.(tree.String)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %s", item.Kind())
			}
			out = append(out, string(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a string or an array of strings, got %s", v.Kind())
	}
}
