package gocalc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	cmd, err := LoadScript(filepath.Join("testdata", "plugins", "power"))
	require.NoError(t, err)
	assert.Equal(t, "power", cmd.Name)

	var buf bytes.Buffer
	require.NoError(t, cmd.Execute(&Env{Stdout: &buf}, "2", "10"))
	assert.Equal(t, "The result of 2 ^ 10 is 1024\n", buf.String())

	err = cmd.Execute(&Env{Stdout: &buf}, "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power requires exactly 2 arguments")
}

func TestLoadScriptMultipleFiles(t *testing.T) {
	cmd, err := LoadScript(filepath.Join("testdata", "plugins", "modulo"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cmd.Execute(&Env{Stdout: &buf}, "17", "5"))
	assert.Equal(t, "The result of 17 % 5 is 2\n", buf.String())
}

func TestLoadScriptForbiddenImport(t *testing.T) {
	_, err := LoadScript(filepath.Join("testdata", "plugins", "shell"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden imports")
	assert.Contains(t, err.Error(), "os/exec")
}

func TestLoadScriptNoSource(t *testing.T) {
	_, err := LoadScript(filepath.Join("testdata", "plugins", "notes"))
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "wrong package",
			src:  "package square\n\nfunc Execute(args []string) (string, error) { return \"\", nil }\n",
			want: "want main",
		},
		{
			name: "missing Execute",
			src:  "package main\n\nfunc Run(args []string) (string, error) { return \"\", nil }\n",
			want: "function Execute not found",
		},
		{
			name: "wrong signature",
			src:  "package main\n\nfunc Execute(a, b string) string { return a + b }\n",
			want: "function Execute has incorrect signature",
		},
		{
			name: "syntax error",
			src:  "package main\n\nfunc Execute(args []string) (string, error) {\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "plugin")
			require.NoError(t, os.Mkdir(dir, 0755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.go"), []byte(tt.src), 0644))

			_, err := LoadScript(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeScriptSkipsTests(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main\n\nimport \"fmt\"\n\nfunc Execute(args []string) (string, error) { return fmt.Sprint(len(args)), nil }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package main\n\nimport \"testing\"\n"), 0644))

	files, err := scriptFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	src, err := mergeScript(files)
	require.NoError(t, err)
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, "\t\"fmt\"")
	assert.Contains(t, src, "func Execute(args []string)")
}
