package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "deployment.yaml", `
schema:
  file: schemas/apps-v1.json
  groupVersion: apps/v1
  kind: Deployment
fields:
  metadata.name:
    title: Name
    required: true
  spec.replicas:
  metadata.labels:
    title: Labels
    uiHints:
      ui:options:
        label: true
`)

	def, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "schemas", "apps-v1.json"), def.Schema.File)
	assert.Equal(t, "apps/v1", def.Schema.GroupVersion)
	assert.Equal(t, "Deployment", def.Schema.Kind)
	assert.False(t, def.Schema.FromCluster())

	assert.Equal(t, []string{"metadata.name", "spec.replicas", "metadata.labels"}, def.Fields.Paths())
	name := def.Fields.Entries()[0].Options
	assert.Equal(t, "Name", name.Title)
	require.NotNil(t, name.Required)
	assert.True(t, *name.Required)
	assert.Equal(t, map[string]any{"ui:options": map[string]any{"label": true}},
		def.Fields.Entries()[2].Options.UIHints)
}

func TestLoad_TildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, "form.yaml", "schema: {groupVersion: v1, kind: ConfigMap}\nfields: [data]\n")

	def, err := Load("~/form.yaml")
	require.NoError(t, err)

	assert.True(t, def.Schema.FromCluster())
	assert.Equal(t, []string{"data"}, def.Fields.Paths())
}

func TestLoad_AbsoluteSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "form.yaml", "schema: {file: /etc/kform/crd.yaml}\nfields: [spec.size]\n")

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/kform/crd.yaml", def.Schema.File)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read form definition")
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "no schema source",
			input:   "fields: [metadata.name]\n",
			wantErr: "schema.file or schema.groupVersion and schema.kind are required",
		},
		{
			name:    "kind without group version",
			input:   "schema: {file: a.json, kind: Deployment}\nfields: [metadata.name]\n",
			wantErr: "must be set together",
		},
		{
			name:    "no fields",
			input:   "schema: {file: a.json}\n",
			wantErr: "at least one field",
		},
		{
			name:    "empty segment",
			input:   "schema: {file: a.json}\nfields: [metadata..name]\n",
			wantErr: `invalid path "metadata..name"`,
		},
		{
			name:    "reserved segment",
			input:   "schema: {file: a.json}\nfields: [metadata.__proto__.x]\n",
			wantErr: `reserved segment "__proto__"`,
		},
		{
			name:    "duplicate path",
			input:   "schema: {file: a.json}\nfields: [metadata.name, metadata.name]\n",
			wantErr: "duplicate path",
		},
		{
			name:    "malformed yaml",
			input:   "schema: [\n",
			wantErr: "failed to parse form definition",
		},
		{
			name:  "valid",
			input: "schema: {file: a.json}\nfields: [metadata.name]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got, err := ExpandPath("~/forms/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/forms/a.yaml", got)

	got, err = ExpandPath("relative/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "relative/a.yaml", got)
}
