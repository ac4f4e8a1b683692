package testkit

import (
	"context"
	"fmt"
	"strings"

	"lev/internal/diagfmt"
	"lev/internal/driver"
	"lev/internal/ir"
)

// Failure is a mismatch between an assertion and what the pipeline produced.
type Failure struct {
	Assertion Assertion
	Got       string
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %s mismatch\n--- want\n%s\n--- got\n%s",
		f.Assertion.Line, f.Assertion.Type, f.Assertion.Content, f.Got)
}

// Run compiles tc.Program and checks every assertion. The returned slice is
// empty when the case passes; err reports problems outside the assertions
// (a runtime failure in an execute case, broken span invariants).
func Run(ctx context.Context, tc TestCase) ([]Failure, error) {
	name := tc.Name + ".lev"
	res := driver.CompileSource(ctx, name, []byte(tc.Program), driver.Options{})
	if res.Builder != nil && res.Err == nil {
		if err := CheckSpanInvariants(res.Builder, res.Stmts, res.File); err != nil {
			return nil, err
		}
	}

	var failures []Failure
	for _, a := range tc.Assertions {
		got, err := observe(ctx, a.Type, res)
		if err != nil {
			return failures, fmt.Errorf("line %d: %w", a.Line, err)
		}
		if strings.TrimRight(got, "\n") != a.Content {
			failures = append(failures, Failure{Assertion: a, Got: got})
		}
	}
	return failures, nil
}

func observe(ctx context.Context, typ AssertionType, res *driver.Result) (string, error) {
	switch typ {
	case AssertTokens:
		if res.Tokens == nil {
			return "", fmt.Errorf("no tokens: %w", res.Err)
		}
		return diagfmt.FormatTokensCompact(res.Tokens), nil
	case AssertAST:
		if res.Builder == nil || res.Stmts == nil {
			return "", fmt.Errorf("no syntax tree: %w", res.Err)
		}
		var sb strings.Builder
		if err := diagfmt.FormatASTSexpr(&sb, res.Builder, res.Stmts); err != nil {
			return "", err
		}
		return sb.String(), nil
	case AssertIR:
		if res.Module == nil {
			return "", fmt.Errorf("no IR: %w", res.Err)
		}
		return ir.DumpString(res.Module), nil
	case AssertCompileError:
		return compileError(res), nil
	case AssertExecute:
		if res.Err != nil {
			return "compile error: " + compileError(res), nil
		}
		v, err := driver.Run(ctx, res, driver.RunOptions{})
		if err != nil {
			return "", err
		}
		return v.String(), nil
	default:
		return "", fmt.Errorf("unknown assertion %q", typ)
	}
}

// compileError: "CODE line:col message", "ok" если ошибок нет.
func compileError(res *driver.Result) string {
	if res.Bag.Len() == 0 {
		return "ok"
	}
	d := res.Bag.Items()[0]
	start, _ := res.FileSet.Resolve(d.Primary)
	return fmt.Sprintf("%s %d:%d %s", d.Code.ID(), start.Line, start.Col, d.Message)
}
