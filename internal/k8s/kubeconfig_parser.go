package k8s

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sahilm/fuzzy"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ContextInfo holds context metadata from kubeconfig
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
}

// DefaultKubeconfigPath returns $HOME/.kube/config.
func DefaultKubeconfigPath() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("HOME environment variable not set and no kubeconfig provided")
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// ListContexts loads kubeconfig and returns its contexts sorted by name.
func ListContexts(kubeconfigPath string) ([]*ContextInfo, error) {
	config, err := clientcmd.LoadFromFile(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	contexts := make([]*ContextInfo, 0, len(config.Contexts))
	for name, ctx := range config.Contexts {
		contexts = append(contexts, &ContextInfo{
			Name:      name,
			Cluster:   ctx.Cluster,
			User:      ctx.AuthInfo,
			Namespace: ctx.Namespace,
		})
	}

	// Sort alphabetically so the output is stable across map iterations
	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].Name < contexts[j].Name
	})

	return contexts, nil
}

// GetCurrentContext returns the current context from kubeconfig
func GetCurrentContext(kubeconfigPath string) (string, error) {
	config, err := clientcmd.LoadFromFile(kubeconfigPath)
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return config.CurrentContext, nil
}

// RESTConfig builds a client config from kubeconfig. An empty kubeconfig
// means $HOME/.kube/config; an empty contextName means the current context.
func RESTConfig(kubeconfig, contextName string) (*rest.Config, error) {
	if kubeconfig == "" {
		path, err := DefaultKubeconfigPath()
		if err != nil {
			return nil, err
		}
		kubeconfig = path
	}

	if contextName != "" {
		if err := checkContext(kubeconfig, contextName); err != nil {
			return nil, err
		}
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}
	configOverrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		configOverrides.CurrentContext = contextName
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		configOverrides,
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error building kubeconfig: %w", err)
	}
	return config, nil
}

// checkContext fails early, with suggestions, when contextName is not in
// kubeconfig. clientcmd would otherwise report a generic invalid config.
func checkContext(kubeconfig, contextName string) error {
	contexts, err := ListContexts(kubeconfig)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(contexts))
	for _, c := range contexts {
		if c.Name == contextName {
			return nil
		}
		names = append(names, c.Name)
	}

	matches := fuzzy.Find(contextName, names)
	if len(matches) > 0 {
		return fmt.Errorf("context %q not found in %s (did you mean %q?)", contextName, kubeconfig, matches[0].Str)
	}
	return fmt.Errorf("context %q not found in %s", contextName, kubeconfig)
}
