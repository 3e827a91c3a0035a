package tree

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxNodes bounds the number of values produced while expanding aliases.
const maxNodes = 1 << 20

// ErrDocumentTooLarge is returned when alias expansion exceeds the node budget.
var ErrDocumentTooLarge = errors.New("document too large after alias expansion")

// Parse decodes a YAML or JSON document into a Value.
//
// Anchors are expanded into independent copies and merge keys ("<<") are applied,
// with explicitly written keys taking precedence over merged ones. An empty document
// (or one holding only null) yields an empty object.
func Parse(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	c := &converter{budget: maxNodes}
	v, err := c.convert(&doc)
	if err != nil {
		return nil, err
	}
	if _, isNull := v.(Null); isNull {
		return NewObject(), nil
	}
	return v, nil
}

type converter struct {
	budget int
}

func (c *converter) convert(n *yaml.Node) (Value, error) {
	c.budget--
	if c.budget < 0 {
		return nil, ErrDocumentTooLarge
	}

	switch n.Kind {
	case 0:
		return Null{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return &Array{Items: items}, nil
	case yaml.MappingNode:
		return c.mapping(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (c *converter) mapping(n *yaml.Node) (*Object, error) {
	obj := NewObject()
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		key, err := mappingKey(k)
		if err != nil {
			return nil, err
		}
		val, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}

	for _, m := range merges {
		if err := c.merge(obj, m); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// merge copies keys from a merge value into obj without overriding existing keys.
// For a sequence of mappings the earlier mapping wins.
func (c *converter) merge(obj *Object, n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		src, err := c.mapping(n)
		if err != nil {
			return err
		}
		for _, k := range src.keys {
			if !obj.Has(k) {
				obj.Set(k, src.fields[k])
			}
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err := c.merge(obj, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", n.Line)
	}
}

func mappingKey(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", n.Line)
	}
	return n.Value, nil
}

func scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Boolean(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, fmt.Errorf("line %d: integer %q out of range", n.Line, n.Value)
		}
		return Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: non-finite number %q is not supported", n.Line, n.Value)
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return String(n.Value), nil
	}
}
