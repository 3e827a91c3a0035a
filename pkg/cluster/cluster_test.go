package cluster

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/tree"
	"github.com/NVIDIA/clusterspec/pkg/validator"
)

func embedded(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.LoadEmbedded()
	require.NoError(t, err)
	return s
}

func defaultString(t *testing.T, s *schema.Schema, segments ...string) string {
	t.Helper()
	v, err := s.Default(segments...)
	require.NoError(t, err)
	str, ok := v.(tree.String)
	require.True(t, ok)
	return string(str)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml", embedded(t))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "load-malformed.yaml"), embedded(t))
	require.Error(t, err)
	assert.False(t, validator.IsViolation(err))
}

func TestLoadValid(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "load-valid.yaml"), embedded(t))
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Name)
	assert.Equal(t, "v1.31.0", c.KubernetesVersion)
	assert.Equal(t, "10.0.0.0/16", c.PrivateNetwork)
	assert.Equal(t, "10.0.1.0/24", c.PrivateSubnetwork)
	assert.True(t, c.UsePrivateNetwork)
	assert.True(t, c.SkipInitApply)
	assert.Equal(t, HcloudMachine{ServerType: "cx32", Datacenter: "fsn1-dc14"}, c.MachineDefaults.Hcloud)
	require.Len(t, c.Machines, 2)

	first, ok := c.Machine("init-1")
	require.True(t, ok)
	assert.Equal(t, MachineTypeInit, first.Type)
	assert.Equal(t, PlatformHcloud, first.Platform)
	assert.Equal(t, VariantMetal, first.Variant)
	assert.Equal(t, "v1.10.0", first.TalosInitialVersion)
	assert.Equal(t, "10.0.1.10", first.PrivateIP)
	assert.True(t, first.IsControlPlane())
	// Explicit machine settings win, unset ones come from machineDefaults.
	assert.Equal(t, HcloudMachine{ServerType: "cx32", Datacenter: "hel1-dc2"}, first.Hcloud)

	worker, ok := c.Machine("worker-1")
	require.True(t, ok)
	assert.Equal(t, VariantCloud, worker.Variant)
	assert.Equal(t, "#cloud-config", worker.Userdata)
	assert.True(t, worker.ApplyConfigViaUserdata)
	assert.Equal(t, []string{"machine: {}"}, worker.ConfigPatches)
	assert.False(t, worker.IsControlPlane())
	assert.Equal(t, HcloudMachine{ServerType: "cx32", Datacenter: "fsn1-dc14"}, worker.Hcloud)

	_, ok = c.Machine("nope")
	assert.False(t, ok)
	assert.Len(t, c.MachinesOfType(MachineTypeWorker), 1)
}

func TestLoadMinimal(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "load-minimal.yaml"), embedded(t))
	require.NoError(t, err)

	require.Len(t, c.Machines, 1)
	m := c.Machines[0]
	assert.Equal(t, "cp-1", m.ID)
	assert.Equal(t, MachineTypeControlPlane, m.Type)
	assert.Empty(t, m.PrivateIP)
	assert.Empty(t, m.Userdata)
	assert.NotNil(t, m.ConfigPatches)
	assert.Empty(t, m.ConfigPatches)
	assert.False(t, m.ApplyConfigViaUserdata)
	assert.False(t, c.UsePrivateNetwork)
}

func TestLoadDefaults(t *testing.T) {
	s := embedded(t)
	c, err := Load(filepath.Join("testdata", "load-defaults.yaml"), s)
	require.NoError(t, err)

	kubernetesVersion := defaultString(t, s, "properties", "kubernetesVersion", "default")
	talosImage := defaultString(t, s, "properties", "machines", "items", "properties", "talosImage", "default")
	serverType := defaultString(t, s, "properties", "machineDefaults", "properties", "hcloud", "properties", "serverType", "default")
	datacenter := defaultString(t, s, "properties", "machineDefaults", "properties", "hcloud", "properties", "datacenter", "default")

	assert.Equal(t, kubernetesVersion, c.KubernetesVersion)
	for _, m := range c.Machines {
		assert.Equal(t, talosImage, m.TalosImage, m.ID)
		assert.Equal(t, serverType, m.Hcloud.ServerType, m.ID)
		assert.Equal(t, datacenter, m.Hcloud.Datacenter, m.ID)
		assert.Equal(t, VariantMetal, m.Variant, m.ID)
	}
}

func TestParse_ValidationError(t *testing.T) {
	_, err := Parse([]byte("name: demo\nmachines: []\n"), embedded(t))
	require.Error(t, err)

	var viol *validator.Violation
	require.True(t, errors.As(err, &viol))
	assert.Equal(t, "Invalid cluster spec: 'machines' must be a non-empty array", viol.Error())
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := Parse(nil, embedded(t))
	require.Error(t, err)
	assert.Equal(t, "Invalid cluster spec: 'name' is a required string", err.Error())
}
