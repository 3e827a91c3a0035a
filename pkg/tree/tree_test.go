package tree

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse_Scalars(t *testing.T) {
	v, err := Parse([]byte(`
name: demo
count: 3
ratio: 0.5
hex: 0x1F
enabled: true
nothing: null
quoted: "42"
`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "count", "ratio", "hex", "enabled", "nothing", "quoted"}, obj.Keys())

	tests := []struct {
		key  string
		want Value
	}{
		{"name", String("demo")},
		{"count", Number("3")},
		{"ratio", Number("0.5")},
		{"hex", Number("31")},
		{"enabled", Boolean(true)},
		{"nothing", Null{}},
		{"quoted", String("42")},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := obj.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_EmptyDocumentIsEmptyObject(t *testing.T) {
	for _, in := range []string{"", "\n", "null", "~"} {
		v, err := Parse([]byte(in))
		require.NoError(t, err)
		obj, ok := v.(*Object)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, 0, obj.Len())
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestParse_NonFiniteRejected(t *testing.T) {
	_, err := Parse([]byte("x: .inf"))
	assert.Error(t, err)
}

func TestParse_AnchorsAndMerge(t *testing.T) {
	v, err := Parse([]byte(`
base: &base
  type: worker
  platform: hcloud
machines:
  - <<: *base
    id: w-1
  - <<: *base
    id: w-2
    type: controlplane
`))
	require.NoError(t, err)

	machines, ok := Lookup(v, NewPath("machines"))
	require.True(t, ok)
	arr := machines.(*Array)
	require.Equal(t, 2, arr.Len())

	first := arr.Items[0].(*Object)
	assert.Equal(t, []string{"id", "type", "platform"}, first.Keys())
	assert.Equal(t, "worker", first.GetString("type"))

	second := arr.Items[1].(*Object)
	assert.Equal(t, "controlplane", second.GetString("type"), "explicit keys win over merged keys")

	// Expanded aliases must not share storage.
	first.Set("platform", String("changed"))
	assert.Equal(t, "hcloud", second.GetString("platform"))
}

// laughs builds nested anchors where each level repeats the previous one ten times.
func laughs(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [lol, lol, lol, lol, lol, lol, lol, lol, lol, lol]\n")
	for i := 1; i <= levels; i++ {
		refs := make([]string, 10)
		for j := range refs {
			refs[j] = fmt.Sprintf("*l%d", i-1)
		}
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.Join(refs, ", "))
	}
	return b.String()
}

func TestParse_AliasExpansionBudget(t *testing.T) {
	_, err := Parse([]byte(laughs(8)))
	require.ErrorIs(t, err, ErrDocumentTooLarge)

	v, err := Parse([]byte(laughs(2)))
	require.NoError(t, err)
	top, ok := Lookup(v, NewPath("l2", 9, 9, 9))
	require.True(t, ok)
	assert.Equal(t, String("lol"), top)
}

func TestParse_MergeSequenceFirstWins(t *testing.T) {
	v, err := Parse([]byte(`
a: &a {x: 1, y: 1}
b: &b {y: 2, z: 2}
c:
  <<: [*a, *b]
`))
	require.NoError(t, err)

	c, ok := Lookup(v, NewPath("c"))
	require.True(t, ok)
	obj := c.(*Object)
	y, _ := obj.Get("y")
	z, _ := obj.Get("z")
	assert.Equal(t, Number("1"), y)
	assert.Equal(t, Number("2"), z)
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", Path{}, ""},
		{"single key", NewPath("machines"), "machines"},
		{"key index key", NewPath("machines", 0, "id"), "machines[0].id"},
		{"nested", NewPath("machines", 2, "hcloud", "serverType"), "machines[2].hcloud.serverType"},
		{"leading index", NewPath(1, "id"), "[1].id"},
		{"consecutive indices", NewPath("grid", 1, 2), "grid[1][2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_Field(t *testing.T) {
	assert.Equal(t, "name", Path{}.Field("name"))
	assert.Equal(t, "machines[0].id", NewPath("machines", 0).Field("id"))
	assert.Equal(t, "machineDefaults.extra", NewPath("machineDefaults").Field("extra"))
}

func TestParsePointer(t *testing.T) {
	root, err := Parse([]byte(`
machines:
  - id: a
labels:
  "0": zero
  "a/b": slash
`))
	require.NoError(t, err)

	tests := []struct {
		ptr  string
		want Path
	}{
		{"", Path{}},
		{"/machines", NewPath("machines")},
		{"/machines/0/id", NewPath("machines", 0, "id")},
		{"/labels/0", NewPath("labels", "0")},
		{"/labels/a~1b", NewPath("labels", "a/b")},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			got, err := ParsePointer(tt.ptr, root)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}

	_, err = ParsePointer("machines", root)
	assert.Error(t, err)
}

func TestCloneAndEqual(t *testing.T) {
	orig, err := Parse([]byte(`{a: [1, {b: true}], c: x}`))
	require.NoError(t, err)

	cp := Clone(orig)
	assert.True(t, Equal(orig, cp))

	inner, ok := Lookup(cp, NewPath("a", 1))
	require.True(t, ok)
	inner.(*Object).Set("b", Boolean(false))
	assert.False(t, Equal(orig, cp))

	assert.True(t, Equal(Number("1"), Number("1.0")))
	assert.False(t, Equal(Number("1"), String("1")))
}

func TestToAny(t *testing.T) {
	v, err := Parse([]byte("name: demo\ncount: 2\nlist: [true, null, 1.5]\n"))
	require.NoError(t, err)

	out, ok := ToAny(v).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo", out["name"])
	assert.Equal(t, json.Number("2"), out["count"])
	assert.Equal(t, []any{true, nil, json.Number("1.5")}, out["list"])
}

func TestEncode_PreservesOrder(t *testing.T) {
	v, err := Parse([]byte("zeta: 1\nalpha: [a, null]\nmid: {ok: true}\n"))
	require.NoError(t, err)

	j, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":1,"alpha":["a",null],"mid":{"ok":true}}`, string(j))
	assert.Equal(t, `{"zeta":1,"alpha":["a",null],"mid":{"ok":true}}`, string(j))

	y, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha:\n    - a\n    - null\nmid:\n    ok: true\n", string(y))

	back, err := Parse(y)
	require.NoError(t, err)
	assert.True(t, Equal(v, back))
}
