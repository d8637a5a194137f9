package k8s

import (
	"bytes"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"
)

// Output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatObject renders obj as YAML or JSON. Objects carrying apiVersion and
// kind go through the kubectl printers so the output matches
// `kubectl get -o yaml`; anything else is encoded directly.
func FormatObject(obj map[string]any, format string) (string, error) {
	u := &unstructured.Unstructured{Object: obj}
	if u.GetAPIVersion() == "" || u.GetKind() == "" {
		return FormatValue(obj, format)
	}

	var base printers.ResourcePrinter
	switch format {
	case FormatYAML, "":
		base = &printers.YAMLPrinter{}
	case FormatJSON:
		base = &printers.JSONPrinter{}
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}

	printer := printers.NewTypeSetter(scheme.Scheme).ToPrinter(base)
	var buf bytes.Buffer
	if err := printer.PrintObj(u, &buf); err != nil {
		return "", fmt.Errorf("failed to print %s: %w", format, err)
	}
	return buf.String(), nil
}

// FormatValue renders any JSON-compatible value as YAML or indented JSON.
func FormatValue(v any, format string) (string, error) {
	switch format {
	case FormatYAML, "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		return string(data), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}
