package serializer

import (
	"context"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestConfigMapWriter_Create(t *testing.T) {
	clientset := fake.NewClientset()
	ctx := context.Background()

	w := NewConfigMapWriter("infra", "spec", FormatYAML, WithClient(clientset))
	if err := w.Serialize(ctx, testConfig{Name: testName, Value: 1}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps("infra").Get(ctx, "spec", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("ConfigMap not found: %v", err)
	}
	if cm.Labels[ManagedByLabel] != ManagedByValue {
		t.Errorf("expected managed-by label, got %v", cm.Labels)
	}
	data, ok := cm.Data["cluster.yaml"]
	if !ok {
		t.Fatalf("expected cluster.yaml key, got %v", cm.Data)
	}
	if !strings.Contains(data, "name: test") {
		t.Errorf("unexpected data: %q", data)
	}
}

func TestConfigMapWriter_Update(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "spec",
			Namespace: "infra",
			Labels:    map[string]string{"team": "platform"},
		},
		Data: map[string]string{"stale": "value"},
	})

	w := NewConfigMapWriter("infra", "spec", FormatJSON, WithClient(clientset))
	if err := w.Serialize(ctx, testConfig{Name: "updated"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps("infra").Get(ctx, "spec", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("ConfigMap not found: %v", err)
	}
	if _, ok := cm.Data["stale"]; ok {
		t.Error("expected stale data to be replaced")
	}
	if !strings.Contains(cm.Data["cluster.json"], "updated") {
		t.Errorf("unexpected data: %v", cm.Data)
	}
	if cm.Labels["team"] != "platform" || cm.Labels[ManagedByLabel] != ManagedByValue {
		t.Errorf("unexpected labels: %v", cm.Labels)
	}
}

func TestConfigMapWriter_TableStoredAsYAML(t *testing.T) {
	w := NewConfigMapWriter("infra", "spec", FormatTable)
	if w.DataKey() != "cluster.yaml" {
		t.Errorf("DataKey() = %q, want cluster.yaml", w.DataKey())
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close should not error: %v", err)
	}
}

func TestParseConfigMapURI(t *testing.T) {
	ns, name, err := ParseConfigMapURI("cm://kube-system/cluster.spec")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ns != "kube-system" || name != "cluster.spec" {
		t.Errorf("got %s/%s", ns, name)
	}

	if _, _, err := ParseConfigMapURI("file:///tmp/x"); err == nil {
		t.Error("expected error for non cm:// URI")
	}
}
