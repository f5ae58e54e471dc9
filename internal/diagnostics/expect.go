package diagnostics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Expectation is one finding a fixture promises to produce.
type Expectation struct {
	Function string `yaml:"function"`
	Kind     Kind   `yaml:"kind"`
	// Contains, when set, must be a substring of the message.
	Contains string `yaml:"contains,omitempty"`
}

// Expectations is the parsed form of an expect.yaml file.
type Expectations struct {
	File     string        `yaml:"file"`
	Findings []Expectation `yaml:"findings"`
}

// LoadExpectations reads an expect.yaml file.
func LoadExpectations(path string) (*Expectations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseExpectations(data)
}

// ParseExpectations decodes expectations and rejects unknown kinds.
func ParseExpectations(data []byte) (*Expectations, error) {
	var exp Expectations
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("decode expectations: %w", err)
	}
	for i, f := range exp.Findings {
		if !knownKind(f.Kind) {
			return nil, fmt.Errorf("finding %d: unknown kind %q", i, f.Kind)
		}
	}
	return &exp, nil
}

// Verify returns an error naming every expectation the report does not satisfy.
func (e *Expectations) Verify(report *Report) error {
	var errs []error
	for _, want := range e.Findings {
		if !satisfied(want, report.Diagnostics) {
			errs = append(errs, fmt.Errorf("missing %s in %s", want.Kind, want.Function))
		}
	}
	return errors.Join(errs...)
}

func satisfied(want Expectation, diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Kind != want.Kind {
			continue
		}
		if want.Function != "" && d.Function != want.Function {
			continue
		}
		if want.Contains != "" && !strings.Contains(d.Message, want.Contains) {
			continue
		}
		return true
	}
	return false
}

func knownKind(k Kind) bool {
	switch k {
	case KindUndeclaredName, KindIncompatibleAssign, KindMissingReturn, KindWrongArgCount,
		KindInvalidPointerInit, KindSyntax, KindOther:
		return true
	}
	return false
}
