package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns an object-key segment.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns an array-index segment.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether s is an array index.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key of s, or "" for index segments.
func (s Segment) Key() string { return s.key }

// Index returns the array index of s, or -1 for key segments.
func (s Segment) Index() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

// Path is an absolute location in a document tree.
type Path []Segment

// NewPath builds a path from string keys and int indices.
func NewPath(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch t := e.(type) {
		case int:
			p = append(p, Index(t))
		case string:
			p = append(p, Key(t))
		case Segment:
			p = append(p, t)
		default:
			panic(fmt.Sprintf("tree: invalid path element %T", e))
		}
	}
	return p
}

// Append returns a new path with s added at the end. p is not modified.
func (p Path) Append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Last returns the final segment of p.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Equal reports whether p and q name the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String renders p left to right. The first token has no separator, later keys are
// prefixed with "." and indices are rendered as "[i]" directly after the previous token.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if s.isIndex {
			sb.WriteString("[" + strconv.Itoa(s.index) + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.key)
	}
	return sb.String()
}

// Field renders p followed by one more key, used for fields that are not part of the
// tree yet (missing required fields) or should not be (unknown fields).
func (p Path) Field(name string) string {
	return p.Append(Key(name)).String()
}

// ParsePointer converts a JSON pointer (RFC 6901) into a Path. root decides whether a
// numeric token addresses an array element or an object key.
func ParsePointer(ptr string, root Value) (Path, error) {
	if ptr == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q", ptr)
	}

	tokens := strings.Split(ptr[1:], "/")
	p := make(Path, 0, len(tokens))
	cur := root
	for _, tok := range tokens {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")

		if arr, ok := cur.(*Array); ok {
			if i, err := strconv.Atoi(tok); err == nil {
				p = append(p, Index(i))
				cur, _ = arr.At(i)
				continue
			}
		}
		p = append(p, Key(tok))
		if obj, ok := cur.(*Object); ok {
			cur, _ = obj.Get(tok)
		} else {
			cur = nil
		}
	}
	return p, nil
}

// Lookup returns the value at p inside root.
func Lookup(root Value, p Path) (Value, bool) {
	cur := root
	for _, s := range p {
		switch t := cur.(type) {
		case *Array:
			if !s.isIndex {
				return nil, false
			}
			v, ok := t.At(s.index)
			if !ok {
				return nil, false
			}
			cur = v
		case *Object:
			if s.isIndex {
				return nil, false
			}
			v, ok := t.Get(s.key)
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}
