// Package cluster turns a cluster specification document into typed values.
//
// Parse validates the document, applies schema defaults and copies every field into
// Cluster and Machine structs. Machines that leave an hcloud setting unset inherit
// it from machineDefaults before the schema default applies.
package cluster

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/NVIDIA/clusterspec/pkg/defaults"
	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/tree"
	"github.com/NVIDIA/clusterspec/pkg/validator"
)

// Load reads the specification at path and parses it with Parse.
func Load(path string, s *schema.Schema) (*Cluster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cluster spec %s: %w", path, err)
	}
	return Parse(data, s)
}

// Parse validates data against s, applies defaults and returns the typed cluster.
// Validation failures are returned as *validator.Violation.
func Parse(data []byte, s *schema.Schema) (*Cluster, error) {
	doc, err := tree.Parse(data)
	if err != nil {
		return nil, err
	}

	if err := validator.New(s).Validate(doc); err != nil {
		return nil, err
	}

	inherit := explicitHcloud(doc)
	injected := defaults.Apply(doc, s)

	c := fromTree(doc.(*tree.Object))
	for i, m := range c.Machines {
		var set hcloudFields
		if i < len(inherit) {
			set = inherit[i]
		}
		if !set.serverType && c.MachineDefaults.Hcloud.ServerType != "" {
			m.Hcloud.ServerType = c.MachineDefaults.Hcloud.ServerType
		}
		if !set.datacenter && c.MachineDefaults.Hcloud.Datacenter != "" {
			m.Hcloud.Datacenter = c.MachineDefaults.Hcloud.Datacenter
		}
	}

	slog.Debug("cluster spec parsed",
		"name", c.Name,
		"machines", len(c.Machines),
		"defaults", injected)

	return c, nil
}

type hcloudFields struct {
	serverType bool
	datacenter bool
}

// explicitHcloud records which machine hcloud fields the author wrote, by machine index.
func explicitHcloud(doc tree.Value) []hcloudFields {
	machines, ok := tree.Lookup(doc, tree.NewPath("machines"))
	if !ok {
		return nil
	}
	arr, ok := machines.(*tree.Array)
	if !ok {
		return nil
	}

	out := make([]hcloudFields, arr.Len())
	for i := range arr.Items {
		hc, ok := tree.Lookup(arr.Items[i], tree.NewPath("hcloud"))
		if !ok {
			continue
		}
		if obj, ok := hc.(*tree.Object); ok {
			out[i] = hcloudFields{
				serverType: obj.Has("serverType"),
				datacenter: obj.Has("datacenter"),
			}
		}
	}
	return out
}

func fromTree(root *tree.Object) *Cluster {
	c := &Cluster{
		Name:              root.GetString("name"),
		PrivateNetwork:    root.GetString("privateNetwork"),
		PrivateSubnetwork: root.GetString("privateSubnetwork"),
		UsePrivateNetwork: root.GetBool("usePrivateNetwork"),
		KubernetesVersion: root.GetString("kubernetesVersion"),
		SkipInitApply:     root.GetBool("skipInitApply"),
		Machines:          []*Machine{},
	}

	if md, ok := tree.Lookup(root, tree.NewPath("machineDefaults", "hcloud")); ok {
		if obj, ok := md.(*tree.Object); ok {
			c.MachineDefaults.Hcloud = hcloudFromTree(obj)
		}
	}

	if machines, ok := root.Get("machines"); ok {
		if arr, ok := machines.(*tree.Array); ok {
			for _, item := range arr.Items {
				if obj, ok := item.(*tree.Object); ok {
					c.Machines = append(c.Machines, machineFromTree(obj))
				}
			}
		}
	}

	return c
}

func machineFromTree(obj *tree.Object) *Machine {
	m := &Machine{
		ID:                     obj.GetString("id"),
		Type:                   obj.GetString("type"),
		Platform:               obj.GetString("platform"),
		Variant:                obj.GetString("variant"),
		TalosInitialVersion:    obj.GetString("talosInitialVersion"),
		TalosImage:             obj.GetString("talosImage"),
		PrivateIP:              obj.GetString("privateIP"),
		ConfigPatches:          []string{},
		Userdata:               obj.GetString("userdata"),
		ApplyConfigViaUserdata: obj.GetBool("apply-config-via-userdata"),
	}
	if m.Variant == "" {
		m.Variant = VariantMetal
	}

	if patches, ok := obj.Get("configPatches"); ok {
		if arr, ok := patches.(*tree.Array); ok {
			for _, p := range arr.Items {
				if s, ok := p.(tree.String); ok {
					m.ConfigPatches = append(m.ConfigPatches, string(s))
				}
			}
		}
	}

	if hc, ok := obj.Get("hcloud"); ok {
		if hobj, ok := hc.(*tree.Object); ok {
			m.Hcloud = hcloudFromTree(hobj)
		}
	}

	return m
}

func hcloudFromTree(obj *tree.Object) HcloudMachine {
	return HcloudMachine{
		ServerType: obj.GetString("serverType"),
		Datacenter: obj.GetString("datacenter"),
	}
}
