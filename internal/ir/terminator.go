package ir

// TermKind selects which of the Terminator fields is meaningful.
type TermKind uint8

const (
	TermNone TermKind = iota // block still open
	TermReturn
	TermGoto
	TermIf
	TermUnreachable
)

// Terminator ends a block. Only the field matching Kind is set.
type Terminator struct {
	Kind TermKind

	Return ReturnTerm
	Goto   GotoTerm
	If     IfTerm
}

type ReturnTerm struct {
	HasValue bool
	Value    Value
}

type GotoTerm struct{ Target BlockID }

// IfTerm branches on a bool value.
type IfTerm struct {
	Cond       Value
	Then, Else BlockID
}

// Successors lists branch targets, then-edge first.
func (t *Terminator) Successors() []BlockID {
	if t.Kind == TermGoto {
		return []BlockID{t.Goto.Target}
	}
	if t.Kind == TermIf {
		return []BlockID{t.If.Then, t.If.Else}
	}
	return nil
}
