package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/clusterspec/pkg/defaults"
	"github.com/NVIDIA/clusterspec/pkg/k8s/client"
)

// ConfigMap labels and data keys.
const (
	ManagedByLabel = "app.kubernetes.io/managed-by"
	ManagedByValue = "clusterspec"

	dataKeyPrefix = "cluster"
)

// ParseConfigMapURI splits cm://namespace/name into its parts.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	rest, ok := strings.CutPrefix(uri, ConfigMapURIScheme)
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: missing %s prefix", uri, ConfigMapURIScheme)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	if errs := validation.IsDNS1123Label(parts[0]); len(errs) > 0 {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: namespace: %s", uri, strings.Join(errs, "; "))
	}
	if errs := validation.IsDNS1123Subdomain(parts[1]); len(errs) > 0 {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: name: %s", uri, strings.Join(errs, "; "))
	}
	return parts[0], parts[1], nil
}

// ConfigMapWriter stores a serialized document in a ConfigMap, creating it or
// replacing its data.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     kubernetes.Interface
}

// ConfigMapOption is a functional option for configuring ConfigMapWriter instances.
type ConfigMapOption func(*ConfigMapWriter)

// WithClient returns a ConfigMapOption that sets the Kubernetes client.
func WithClient(c kubernetes.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithKubeconfig returns a ConfigMapOption that sets the kubeconfig used when no
// client was supplied.
func WithKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// NewConfigMapWriter returns a writer for the ConfigMap namespace/name. Table output
// is stored as YAML.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	if format != FormatJSON {
		format = FormatYAML
	}
	w := &ConfigMapWriter{namespace: namespace, name: name, format: format}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DataKey returns the ConfigMap data key the document is stored under.
func (w *ConfigMapWriter) DataKey() string {
	return dataKeyPrefix + "." + string(w.format)
}

// Serialize encodes data and writes it to the ConfigMap.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	b, err := Encode(w.format, data)
	if err != nil {
		return err
	}

	if w.client == nil {
		c, err := client.ForKubeconfig(w.kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		w.client = c
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesAPITimeout)
	defer cancel()

	cms := w.client.CoreV1().ConfigMaps(w.namespace)
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      w.name,
			Namespace: w.namespace,
			Labels:    map[string]string{ManagedByLabel: ManagedByValue},
		},
		Data: map[string]string{w.DataKey(): string(b)},
	}

	_, err = cms.Create(ctx, cm, metav1.CreateOptions{})
	if err == nil {
		slog.Info("configmap created", "namespace", w.namespace, "name", w.name)
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	existing, err := cms.Get(ctx, w.name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	if existing.Labels == nil {
		existing.Labels = map[string]string{}
	}
	existing.Labels[ManagedByLabel] = ManagedByValue
	existing.Data = cm.Data

	if _, err := cms.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	slog.Info("configmap updated", "namespace", w.namespace, "name", w.name)
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}
