package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a non-blank logical line.
	Newline
	// Indent opens a deeper indentation level.
	Indent
	// Dedent closes one indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal like 42.
	IntLit
	// FloatLit represents a literal with a decimal point like 1.5.
	FloatLit
	// StringLit represents a double quoted string literal.
	StringLit

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwBreak represents the 'break' keyword.
	KwBreak // break

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Assign      // =
	EqEq        // ==
	Bang        // !
	BangEq      // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	Arrow       // ->
	Colon       // :
	Comma       // ,
	Semicolon   // ;
	LParen      // (
	RParen      // )

	kindCount
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Newline:     "Newline",
	Indent:      "Indent",
	Dedent:      "Dedent",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	KwFn:        "KwFn",
	KwLet:       "KwLet",
	KwMut:       "KwMut",
	KwIf:        "KwIf",
	KwElse:      "KwElse",
	KwWhile:     "KwWhile",
	KwFor:       "KwFor",
	KwReturn:    "KwReturn",
	KwAnd:       "KwAnd",
	KwOr:        "KwOr",
	KwNot:       "KwNot",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwClass:     "KwClass",
	KwImpl:      "KwImpl",
	KwBreak:     "KwBreak",
	Plus:        "Plus",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	Assign:      "Assign",
	EqEq:        "EqEq",
	Bang:        "Bang",
	BangEq:      "BangEq",
	Lt:          "Lt",
	LtEq:        "LtEq",
	Gt:          "Gt",
	GtEq:        "GtEq",
	PlusAssign:  "PlusAssign",
	MinusAssign: "MinusAssign",
	StarAssign:  "StarAssign",
	SlashAssign: "SlashAssign",
	Arrow:       "Arrow",
	Colon:       "Colon",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	LParen:      "LParen",
	RParen:      "RParen",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// punct - исходное написание операторов, для сообщений об ошибках.
var punct = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/",
	Assign: "=", EqEq: "==", Bang: "!", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	Arrow: "->", Colon: ":", Comma: ",", Semicolon: ";",
	LParen: "(", RParen: ")",
}

var punctKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(punct))
	for k, p := range punct {
		m[p] = k
	}
	return m
}()

// LookupPunct maps an operator spelling back to its kind.
func LookupPunct(s string) (Kind, bool) {
	k, ok := punctKinds[s]
	return k, ok
}

// Describe renders a kind the way a user would write it: "'->'", "'let'",
// "identifier", "end of file".
func (k Kind) Describe() string {
	if p, ok := punct[k]; ok {
		return "'" + p + "'"
	}
	if kw, ok := keywordText[k]; ok {
		return "'" + kw + "'"
	}
	switch k {
	case EOF:
		return "end of file"
	case Newline:
		return "end of line"
	case Indent:
		return "indented block"
	case Dedent:
		return "end of block"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	default:
		return "invalid token"
	}
}
