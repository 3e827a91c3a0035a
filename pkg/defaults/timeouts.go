package defaults

import "time"

// Kubernetes timeouts.
const (
	// KubernetesAPITimeout bounds a single Kubernetes API call, such as writing the
	// normalized specification to a ConfigMap.
	KubernetesAPITimeout = 30 * time.Second
)
