package client

import (
	"os"
	"path/filepath"
	"testing"
)

const kubeconfigYAML = `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`

func writeKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(kubeconfigYAML), 0o600); err != nil {
		t.Fatalf("failed to write kubeconfig: %v", err)
	}
	return path
}

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv("KUBECONFIG", "/from/env")
	if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
		t.Errorf("ResolveKubeconfig(explicit) = %q", got)
	}
	if got := ResolveKubeconfig(""); got != "/from/env" {
		t.Errorf("ResolveKubeconfig(\"\") = %q, want /from/env", got)
	}
}

func TestBuildKubeClient(t *testing.T) {
	cs, cfg, err := BuildKubeClient(writeKubeconfig(t))
	if err != nil {
		t.Fatalf("BuildKubeClient failed: %v", err)
	}
	if cs == nil {
		t.Fatal("expected a clientset")
	}
	if cfg.Host != "https://127.0.0.1:6443" {
		t.Errorf("Host = %q", cfg.Host)
	}
}

func TestBuildKubeClient_MissingFile(t *testing.T) {
	if _, _, err := BuildKubeClient(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing kubeconfig")
	}
}

func TestForKubeconfig_Explicit(t *testing.T) {
	cs, err := ForKubeconfig(writeKubeconfig(t))
	if err != nil {
		t.Fatalf("ForKubeconfig failed: %v", err)
	}
	if cs == nil {
		t.Fatal("expected a client")
	}
}
