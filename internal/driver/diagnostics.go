package driver

import (
	"errors"
	"fmt"
	"io/fs"

	"lev/internal/codegen"
	"lev/internal/diag"
	"lev/internal/lexer"
	"lev/internal/parser"
	"lev/internal/project"
	"lev/internal/source"
)

// ErrorDiagnostic converts a phase error into its diagnostic.
// ok is false for errors that have no diagnostic form (cancellation, internal failures).
func ErrorDiagnostic(err error) (d diag.Diagnostic, ok bool) {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		lowerErr *codegen.Error
		valErr   *ValidationError
		manErr   *project.ManifestError
		pathErr  *fs.PathError
	)
	switch {
	case errors.As(err, &lexErr):
		return diag.NewError(lexCode(lexErr.Kind), lexErr.Span, lexErr.Error()), true
	case errors.As(err, &parseErr):
		code := diag.SynUnexpectedToken
		if parseErr.Kind == parser.Unimplemented {
			code = diag.SynUnimplemented
		}
		return diag.NewError(code, parseErr.Span, parseErr.Error()), true
	case errors.As(err, &lowerErr):
		d := diag.NewError(lowerCode(lowerErr.Kind), lowerErr.Span, lowerErr.Error())
		if lowerErr.Kind == codegen.AssignmentToImmutableVariable && lowerErr.Decl.Line != 0 {
			d = d.WithNote(lowerErr.Decl, fmt.Sprintf("'%s' is declared here; use 'let mut' to allow assignment", lowerErr.Name))
		}
		return d, true
	case errors.As(err, &valErr):
		return diag.NewError(diag.SemaInvalidIR, valErr.Span, valErr.Error()), true
	case errors.As(err, &manErr):
		return diag.NewError(diag.ProjBadManifest, source.Span{}, manErr.Error()), true
	case errors.As(err, &pathErr):
		return diag.NewError(diag.IOLoadFileError, source.Span{}, pathErr.Error()), true
	default:
		return diag.Diagnostic{}, false
	}
}

func lexCode(k lexer.ErrorKind) diag.Code {
	switch k {
	case lexer.UnexpectedCharacter:
		return diag.LexUnexpectedCharacter
	case lexer.RedundantDecimalPoint:
		return diag.LexRedundantDecimalPoint
	case lexer.UnterminatedString:
		return diag.LexUnterminatedString
	default:
		return diag.LexInfo
	}
}

func lowerCode(k codegen.ErrorKind) diag.Code {
	switch k {
	case codegen.UndefinedVariable:
		return diag.SemaUndefinedVariable
	case codegen.AssignmentToImmutableVariable:
		return diag.SemaAssignToImmutable
	case codegen.Unimplemented:
		return diag.SemaUnimplemented
	default:
		return diag.SemaIllFormed
	}
}
