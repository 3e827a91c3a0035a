// Package schema loads the cluster specification schema and answers questions about it.
//
// A Schema is built once from a JSON Schema (draft 7) document and is read-only
// afterwards, so a single instance can be shared by concurrent validation and
// defaulting calls without locking.
//
// Usage:
//
//	s, err := schema.LoadEmbedded()
//	if err != nil {
//	    return err
//	}
//	version, err := s.Default("properties", "kubernetesVersion", "default")
//
// Three views of the document are exposed:
//   - Lookup and Default walk the raw document by keyword segments.
//   - Root and NodeAt expose typed nodes keyed by data paths, used by the defaults
//     engine and the error translator.
//   - Validate runs structural validation and reports the first violation.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	cserrors "github.com/NVIDIA/clusterspec/pkg/errors"
	"github.com/NVIDIA/clusterspec/pkg/tree"
)

// resourceURL names the document inside the structural compiler.
const resourceURL = "cluster.schema.json"

//go:embed data/cluster.schema.json
var embedded []byte

// Schema is a loaded schema document.
type Schema struct {
	raw      tree.Value
	root     *Node
	compiled *jsonschema.Schema
}

// Load parses and compiles a schema document. Failures carry ErrCodeSchemaLoad.
func Load(data []byte) (*Schema, error) {
	raw, err := tree.Parse(data)
	if err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, "failed to parse schema", err)
	}

	root, err := buildNode(raw, "#")
	if err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, "invalid schema node", err)
	}

	// The structural engine reads JSON, so the tree is re-encoded. This also
	// lets YAML-authored schemas compile.
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, "failed to encode schema", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, "failed to add schema resource", err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, "failed to compile schema", err)
	}

	slog.Debug("schema loaded", "properties", len(root.PropertyNames))

	return &Schema{raw: raw, root: root, compiled: compiled}, nil
}

// LoadFile reads and loads the schema at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cserrors.Wrap(cserrors.ErrCodeSchemaLoad, fmt.Sprintf("failed to read schema %s", path), err)
	}
	return Load(data)
}

// LoadEmbedded loads the schema shipped with the binary.
func LoadEmbedded() (*Schema, error) {
	return Load(embedded)
}

// Embedded returns a copy of the shipped schema document.
func Embedded() []byte {
	return bytes.Clone(embedded)
}

// Raw returns a deep copy of the raw schema document.
func (s *Schema) Raw() tree.Value {
	return tree.Clone(s.raw)
}

// Root returns the typed root node.
func (s *Schema) Root() *Node {
	return s.root
}

// Lookup walks the raw document by keyword segments ("properties", "machines",
// "items", ...). Numeric segments index into arrays. The node the path ends on is
// returned unchanged, so a path ending in "default" yields the default literal and
// any other path yields the subschema. The returned value is a copy.
func (s *Schema) Lookup(segments ...string) (tree.Value, error) {
	cur := s.raw
	for i, seg := range segments {
		var next tree.Value
		var ok bool
		switch t := cur.(type) {
		case *tree.Object:
			next, ok = t.Get(seg)
		case *tree.Array:
			if idx, err := strconv.Atoi(seg); err == nil {
				next, ok = t.At(idx)
			}
		}
		if !ok {
			return nil, cserrors.WithContext(cserrors.ErrCodeSchemaPath,
				fmt.Sprintf("schema path %q does not resolve at segment %q", strings.Join(segments, "/"), seg),
				map[string]any{"segment": i})
		}
		cur = next
	}
	return tree.Clone(cur), nil
}

// Default returns the value at segments, normally a path ending in "default".
func (s *Schema) Default(segments ...string) (tree.Value, error) {
	return s.Lookup(segments...)
}

// MustDefault is like Default but panics when the path does not resolve.
func (s *Schema) MustDefault(segments ...string) tree.Value {
	v, err := s.Default(segments...)
	if err != nil {
		panic(err)
	}
	return v
}

// NodeAt returns the typed node that governs the data at p. Keys follow properties
// and indices follow items, with tuple indices clamped to the last item schema.
func (s *Schema) NodeAt(p tree.Path) (*Node, bool) {
	cur := s.root
	for _, seg := range p {
		var ok bool
		if seg.IsIndex() {
			cur, ok = cur.Items.At(seg.Index())
		} else {
			cur, ok = cur.Property(seg.Key())
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
