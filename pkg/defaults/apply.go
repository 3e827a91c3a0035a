package defaults

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/tree"
)

var defaultsInjectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "clusterspec_defaults_injected_total",
		Help: "Total number of default values injected into cluster specifications",
	},
)

// Apply injects the defaults declared by s into v in place and returns the number of
// values injected.
func Apply(v tree.Value, s *schema.Schema) int {
	if s == nil {
		return 0
	}
	return ApplyNode(v, s.Root())
}

// ApplyNode injects the defaults declared by n into v in place and returns the number
// of values injected.
func ApplyNode(v tree.Value, n *schema.Node) int {
	injected := apply(v, n)
	if injected > 0 {
		defaultsInjectedTotal.Add(float64(injected))
	}
	slog.Debug("defaults applied", "injected", injected)
	return injected
}

func apply(v tree.Value, n *schema.Node) int {
	if n == nil {
		return 0
	}

	switch t := v.(type) {
	case *tree.Object:
		if !n.IsObject() {
			return 0
		}
		return applyObject(t, n)
	case *tree.Array:
		if !n.IsArray() {
			return 0
		}
		return applyArray(t, n)
	case tree.String, tree.Number, tree.Boolean, tree.Null:
		return 0
	default:
		return 0
	}
}

func applyObject(obj *tree.Object, n *schema.Node) int {
	var injected int
	for _, name := range n.PropertyNames {
		prop, _ := n.Property(name)
		if !obj.Has(name) && prop.HasDefault() {
			obj.Set(name, tree.Clone(prop.Default))
			injected++
		}
		if child, ok := obj.Get(name); ok {
			injected += apply(child, prop)
		}
	}
	return injected
}

func applyArray(arr *tree.Array, n *schema.Node) int {
	var injected int
	for i, item := range arr.Items {
		sub, ok := n.Items.At(i)
		if !ok {
			break
		}
		injected += apply(item, sub)
	}
	return injected
}
