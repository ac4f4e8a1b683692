package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                  Code = 1000
	LexUnexpectedCharacter   Code = 1001
	LexRedundantDecimalPoint Code = 1002
	LexUnterminatedString    Code = 1003

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnimplemented   Code = 2002

	// Семантические (понижение в IR)
	SemaInfo              Code = 3000
	SemaUndefinedVariable Code = 3001
	SemaAssignToImmutable Code = 3002
	SemaUnimplemented     Code = 3003
	SemaIllFormed         Code = 3004
	SemaInvalidIR         Code = 3005

	IOLoadFileError Code = 4001

	ProjInfo        Code = 5000
	ProjBadManifest Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnexpectedCharacter:   "Unexpected character",
	LexRedundantDecimalPoint: "Redundant decimal point",
	LexUnterminatedString:    "Unterminated string literal",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynUnimplemented:         "Syntax not implemented",
	SemaInfo:                 "Semantic information",
	SemaUndefinedVariable:    "Undefined variable",
	SemaAssignToImmutable:    "Assignment to immutable variable",
	SemaUnimplemented:        "Construct not implemented",
	SemaIllFormed:            "Ill-formed program",
	SemaInvalidIR:            "Lowering produced invalid IR",
	IOLoadFileError:          "I/O load file error",
	ProjInfo:                 "Project information",
	ProjBadManifest:          "Invalid lev.toml",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
