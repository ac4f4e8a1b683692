// Package testkit reads markdown golden cases and checks them against the
// compiler pipeline.
//
// A case starts at a heading "Test: name" and holds one lev-program fence
// plus assertion fences (execute, compile-error, ir, tokens, ast).
package testkit

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ProgramFence marks the source under test.
const ProgramFence = "lev-program"

// AssertionType names an assertion fence.
type AssertionType string

const (
	// AssertExecute: значение, которое возвращает main.
	AssertExecute AssertionType = "execute"
	// AssertCompileError: одна строка "CODE line:col message".
	AssertCompileError AssertionType = "compile-error"
	AssertIR           AssertionType = "ir"
	AssertTokens       AssertionType = "tokens"
	AssertAST          AssertionType = "ast"
)

func (a AssertionType) known() bool {
	switch a {
	case AssertExecute, AssertCompileError, AssertIR, AssertTokens, AssertAST:
		return true
	}
	return false
}

// Assertion is one expectation of a case.
type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// TestCase is a program with its expectations.
type TestCase struct {
	Name       string
	File       string
	Line       int
	Program    string
	Assertions []Assertion
}

// LoadFile extracts the cases of a markdown file.
func LoadFile(path string) ([]TestCase, error) {
	// #nosec G304 -- path comes from the test data walk
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ExtractTestCases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range cases {
		cases[i].File = path
	}
	return cases, nil
}

// ExtractTestCases parses a markdown document and collects its cases.
// Fences with a known language outside a case are an error; plain
// fences anywhere are ignored.
func ExtractTestCases(src []byte) ([]TestCase, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		cases   []TestCase
		current *TestCase
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			heading := nodeText(n, src)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			current = &TestCase{Name: strings.TrimSpace(name), Line: lineOf(n, src)}

		case *mdast.FencedCodeBlock:
			lang := string(n.Language(src))
			line := lineOf(n, src)
			if lang == "" {
				return mdast.WalkContinue, nil
			}
			isKnown := lang == ProgramFence || AssertionType(lang).known()
			if current == nil {
				if isKnown {
					return mdast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, lang)
				}
				return mdast.WalkContinue, nil
			}
			if !isKnown {
				return mdast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, lang, current.Name)
			}
			content := fenceContent(n, src)
			if lang == ProgramFence {
				if current.Program != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", line, ProgramFence, current.Name)
				}
				current.Program = content
				return mdast.WalkContinue, nil
			}
			current.Assertions = append(current.Assertions, Assertion{
				Type:    AssertionType(lang),
				Content: strings.TrimRight(content, "\n"),
				Line:    line,
			})
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(tc *TestCase) error {
	if tc.Program == "" {
		return fmt.Errorf("test '%s' has no %s fence", tc.Name, ProgramFence)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	for _, a := range tc.Assertions {
		if a.Type == AssertExecute && hasAssertion(tc, AssertCompileError) {
			return fmt.Errorf("test '%s' mixes execute and compile-error", tc.Name)
		}
	}
	return nil
}

func hasAssertion(tc *TestCase, typ AssertionType) bool {
	for _, a := range tc.Assertions {
		if a.Type == typ {
			return true
		}
	}
	return false
}

func nodeText(node mdast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

// fenceContent keeps the program bytes as written, indentation included.
func fenceContent(block *mdast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func lineOf(node mdast.Node, src []byte) int {
	pos := 0
	if node.Lines().Len() > 0 {
		pos = node.Lines().At(0).Start
	}
	return bytes.Count(src[:min(pos, len(src))], []byte{'\n'}) + 1
}
