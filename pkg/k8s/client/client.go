// Package client builds Kubernetes clients for writing normalized cluster
// specifications into ConfigMaps.
package client

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client built from the discovered kubeconfig,
// creating it on first call.
func GetKubeClient() (*kubernetes.Clientset, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	return cachedClient, cachedConfig, clientErr
}

// ForKubeconfig returns the cached client when kubeconfig is empty and a fresh client
// for an explicit kubeconfig path otherwise.
func ForKubeconfig(kubeconfig string) (kubernetes.Interface, error) {
	var (
		cs  *kubernetes.Clientset
		err error
	)
	if kubeconfig == "" {
		cs, _, err = GetKubeClient()
	} else {
		cs, _, err = BuildKubeClient(kubeconfig)
	}
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ResolveKubeconfig returns the kubeconfig path to use. An explicit path wins, then
// KUBECONFIG, then ~/.kube/config when it exists. An empty result selects the
// in-cluster service account.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file,
// bypassing the cache. See ResolveKubeconfig for how an empty path is resolved.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	kubeconfig = ResolveKubeconfig(kubeconfig)

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	slog.Debug("kubernetes client created", "kubeconfig", kubeconfig, "host", config.Host)

	return client, config, nil
}
