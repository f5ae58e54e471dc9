package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	errorsFixture = "../../testdata/fixtures/errors/errors.go"
	expectFixture = "../../testdata/fixtures/errors/expect.yaml"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFixtureCheck_ErrorsFixturePasses(t *testing.T) {
	stdout, _, err := execute(t, "--expect", expectFixture, errorsFixture)
	require.NoError(t, err)

	assert.Contains(t, stdout, "5 diagnostic(s)")
	assert.Contains(t, stdout, "[undeclared-name] undefinedVariable")
	assert.Contains(t, stdout, "[invalid-pointer-init] typeConversion")
}

func TestFixtureCheck_CleanFileFailsExpectations(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "errors.go")
	require.NoError(t, os.WriteFile(clean, []byte("package fixture\n\nfunc ok() int { return 1 }\n"), 0o644))

	_, stderr, err := execute(t, "--expect", expectFixture, clean)
	assert.ErrorIs(t, err, errUnmet)
	assert.Contains(t, stderr, "missing missing-return in missingReturn")
}

func TestFixtureCheck_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--json", errorsFixture)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"kind": "wrong-arg-count"`)
}

func TestFixtureCheck_RequiresFiles(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)
}
