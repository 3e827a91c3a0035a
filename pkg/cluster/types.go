package cluster

// Machine roles.
const (
	MachineTypeInit         = "init"
	MachineTypeControlPlane = "controlplane"
	MachineTypeWorker       = "worker"
)

// Machine variants.
const (
	VariantMetal = "metal"
	VariantCloud = "cloud"
)

// PlatformHcloud is the only supported platform.
const PlatformHcloud = "hcloud"

// Cluster is a validated and defaulted cluster specification.
type Cluster struct {
	Name              string          `json:"name" yaml:"name"`
	PrivateNetwork    string          `json:"privateNetwork,omitempty" yaml:"privateNetwork,omitempty"`
	PrivateSubnetwork string          `json:"privateSubnetwork,omitempty" yaml:"privateSubnetwork,omitempty"`
	UsePrivateNetwork bool            `json:"usePrivateNetwork" yaml:"usePrivateNetwork"`
	KubernetesVersion string          `json:"kubernetesVersion" yaml:"kubernetesVersion"`
	SkipInitApply     bool            `json:"skipInitApply" yaml:"skipInitApply"`
	MachineDefaults   MachineDefaults `json:"machineDefaults" yaml:"machineDefaults"`
	Machines          []*Machine      `json:"machines" yaml:"machines"`
}

// MachineDefaults holds per-platform values machines inherit when they do not set
// their own.
type MachineDefaults struct {
	Hcloud HcloudMachine `json:"hcloud" yaml:"hcloud"`
}

// Machine is one node of the cluster.
type Machine struct {
	ID                     string        `json:"id" yaml:"id"`
	Type                   string        `json:"type" yaml:"type"`
	Platform               string        `json:"platform" yaml:"platform"`
	Variant                string        `json:"variant" yaml:"variant"`
	TalosInitialVersion    string        `json:"talosInitialVersion,omitempty" yaml:"talosInitialVersion,omitempty"`
	TalosImage             string        `json:"talosImage" yaml:"talosImage"`
	PrivateIP              string        `json:"privateIP,omitempty" yaml:"privateIP,omitempty"`
	ConfigPatches          []string      `json:"configPatches" yaml:"configPatches"`
	Userdata               string        `json:"userdata,omitempty" yaml:"userdata,omitempty"`
	ApplyConfigViaUserdata bool          `json:"apply-config-via-userdata" yaml:"apply-config-via-userdata"`
	Hcloud                 HcloudMachine `json:"hcloud" yaml:"hcloud"`
}

// HcloudMachine holds Hetzner Cloud server settings.
type HcloudMachine struct {
	ServerType string `json:"serverType" yaml:"serverType"`
	Datacenter string `json:"datacenter" yaml:"datacenter"`
}

// Machine returns the machine with the given id.
func (c *Cluster) Machine(id string) (*Machine, bool) {
	for _, m := range c.Machines {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// MachinesOfType returns the machines with the given role, in declaration order.
func (c *Cluster) MachinesOfType(t string) []*Machine {
	var out []*Machine
	for _, m := range c.Machines {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// IsControlPlane reports whether m runs the Kubernetes control plane.
func (m *Machine) IsControlPlane() bool {
	return m.Type == MachineTypeInit || m.Type == MachineTypeControlPlane
}
