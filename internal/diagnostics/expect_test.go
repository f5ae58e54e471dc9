package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpectations_UnknownKind(t *testing.T) {
	_, err := ParseExpectations([]byte("findings:\n  - function: f\n    kind: nonsense\n"))
	assert.ErrorContains(t, err, `unknown kind "nonsense"`)
}

func TestExpectations_Verify(t *testing.T) {
	exp, err := ParseExpectations([]byte(`
findings:
  - function: f
    kind: missing-return
  - function: g
    kind: undeclared-name
    contains: ghost
`))
	require.NoError(t, err)

	report := &Report{Diagnostics: []Diagnostic{
		{Kind: KindMissingReturn, Function: "f", Message: "missing return"},
		{Kind: KindUndeclaredName, Function: "g", Message: "undefined: other"},
	}}

	err = exp.Verify(report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing undeclared-name in g")
	assert.NotContains(t, err.Error(), "missing-return in f")

	report.Diagnostics[1].Message = "undefined: ghost"
	assert.NoError(t, exp.Verify(report))
}
