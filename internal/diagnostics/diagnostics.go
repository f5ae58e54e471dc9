// Package diagnostics type-checks Go source files and classifies what the checker reports.
//
// It is the reference consumer of testdata/fixtures/errors: every defect planted in that file
// must come back as a Diagnostic of the matching Kind, inside the function that holds it.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Kind groups checker messages into the categories the fixtures exercise.
type Kind string

const (
	KindUndeclaredName     Kind = "undeclared-name"
	KindIncompatibleAssign Kind = "incompatible-assign"
	KindMissingReturn      Kind = "missing-return"
	KindWrongArgCount      Kind = "wrong-arg-count"
	KindInvalidPointerInit Kind = "invalid-pointer-init"
	KindSyntax             Kind = "syntax"
	KindOther              Kind = "other"
)

// Diagnostic is one finding, positioned 1-based.
type Diagnostic struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Kind     Kind   `json:"kind"`
	Message  string `json:"message"`
	Function string `json:"function,omitempty"`
	Soft     bool   `json:"soft,omitempty"`
}

func (d Diagnostic) String() string {
	fn := d.Function
	if fn == "" {
		fn = "-"
	}
	return fmt.Sprintf("%d:%d [%s] %s: %s", d.Line, d.Column, d.Kind, fn, firstLine(d.Message))
}

// Report is the outcome of checking one file.
type Report struct {
	Path        string         `json:"path"`
	Package     string         `json:"package"`
	Functions   []FunctionSpan `json:"functions"`
	Diagnostics []Diagnostic   `json:"diagnostics"`
}

// Clean reports whether no diagnostics were found.
func (r *Report) Clean() bool {
	return len(r.Diagnostics) == 0
}

// ByKind returns the diagnostics of kind k in position order.
func (r *Report) ByKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Check parses and type-checks src. When path names a file on disk, the other non-test files of
// its package directory are checked alongside it so sibling declarations resolve; only findings
// located in path are reported. Syntax errors in path stop the check and are reported as
// KindSyntax; type errors are all collected.
func Check(ctx context.Context, path string, src []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	functions, err := Outline(src)
	if err != nil {
		return nil, fmt.Errorf("outline %s: %w", path, err)
	}
	report := &Report{Path: path, Functions: functions, Diagnostics: []Diagnostic{}}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.AllErrors|parser.ParseComments)
	if err != nil {
		var list scanner.ErrorList
		if !errors.As(err, &list) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for _, e := range list {
			report.add(Diagnostic{
				Line:    e.Pos.Line,
				Column:  e.Pos.Column,
				Kind:    KindSyntax,
				Message: e.Msg,
			})
		}
		report.sort()
		return report, nil
	}
	report.Package = file.Name.Name

	files := append([]*ast.File{file}, siblingFiles(fset, path, file.Name.Name)...)
	target := filepath.Clean(path)

	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			var terr types.Error
			if !errors.As(err, &terr) {
				return
			}
			pos := terr.Fset.Position(terr.Pos)
			if filepath.Clean(pos.Filename) != target {
				return
			}
			report.add(Diagnostic{
				Line:    pos.Line,
				Column:  pos.Column,
				Kind:    Classify(terr.Msg),
				Message: terr.Msg,
				Soft:    terr.Soft,
			})
		},
	}
	// The first error is also delivered through conf.Error.
	_, _ = conf.Check(file.Name.Name, fset, files, nil)

	report.sort()
	return report, nil
}

// siblingFiles parses the other buildable non-test files in path's directory that declare pkg.
// Files that do not parse are left out. A path that is not on disk has no siblings.
func siblingFiles(fset *token.FileSet, path, pkg string) []*ast.File {
	self, err := os.Stat(path)
	if err != nil || self.IsDir() {
		return nil
	}
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		full := filepath.Join(dir, name)
		if info, err := e.Info(); err != nil || os.SameFile(info, self) {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, name); err != nil || !ok {
			continue
		}
		f, err := parser.ParseFile(fset, full, nil, parser.ParseComments)
		if err != nil || f.Name.Name != pkg {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (r *Report) add(d Diagnostic) {
	if fn, ok := EnclosingFunction(r.Functions, d.Line); ok {
		d.Function = fn.Name
	}
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *Report) sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

var pointerTarget = regexp.MustCompile(`^cannot use .* as \*\S+ value`)

// Classify maps a go/types message onto a Kind.
func Classify(msg string) Kind {
	switch {
	case strings.HasPrefix(msg, "undefined: "), strings.HasPrefix(msg, "undeclared name: "):
		return KindUndeclaredName
	case strings.HasPrefix(msg, "missing return"):
		return KindMissingReturn
	case strings.HasPrefix(msg, "not enough arguments in call"),
		strings.HasPrefix(msg, "too many arguments in call"):
		return KindWrongArgCount
	case pointerTarget.MatchString(msg):
		return KindInvalidPointerInit
	case strings.HasPrefix(msg, "cannot use "):
		return KindIncompatibleAssign
	default:
		return KindOther
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
