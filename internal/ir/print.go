package ir

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable form of m, functions in declaration order
// and blocks in layout order.
func Dump(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}
	for i, f := range m.Funcs {
		if f == nil {
			continue
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := dumpFunc(w, m, f); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string.
func DumpString(m *Module) string {
	var sb strings.Builder
	_ = Dump(&sb, m) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

func dumpFunc(w io.Writer, m *Module, f *Func) error {
	var sb strings.Builder
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.Label()
	}
	fmt.Fprintf(&sb, "fn %s(%s) -> %s:\n", f.Name, strings.Join(params, ", "), f.Result.Label())

	if len(f.Slots) > 0 {
		sb.WriteString("  slots:\n")
		for i, s := range f.Slots {
			fmt.Fprintf(&sb, "    s%d: %s %s\n", i, s.Type.Label(), s.Name)
		}
	}
	for _, id := range f.Layout {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		fmt.Fprintf(&sb, "  bb%d %s:\n", bb.ID, bb.Label)
		for j := range bb.Instrs {
			sb.WriteString("    ")
			sb.WriteString(FormatInstr(m, &bb.Instrs[j]))
			sb.WriteByte('\n')
		}
		sb.WriteString("    ")
		sb.WriteString(FormatTerm(&bb.Term))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatInstr renders one instruction as Dump prints it.
func FormatInstr(m *Module, ins *Instr) string {
	t := ins.Type.Label()
	switch ins.Kind {
	case InstrConst:
		return fmt.Sprintf("%%%d = const %s %s", ins.Dst, t, FormatConst(ins.Type, ins.Const.Bits))
	case InstrLoad:
		return fmt.Sprintf("%%%d = load %s s%d", ins.Dst, t, ins.Load.Slot)
	case InstrStore:
		return fmt.Sprintf("store s%d, %%%d", ins.Store.Slot, ins.Store.Value)
	case InstrBinary:
		return fmt.Sprintf("%%%d = %s %s %%%d, %%%d", ins.Dst, ins.Binary.Op, t, ins.Binary.Left, ins.Binary.Right)
	case InstrCompare:
		return fmt.Sprintf("%%%d = cmp %s %s %%%d, %%%d", ins.Dst, ins.Compare.Pred, t, ins.Compare.Left, ins.Compare.Right)
	case InstrParam:
		return fmt.Sprintf("%%%d = param %s %d", ins.Dst, t, ins.Param.Index)
	case InstrCall:
		name := fmt.Sprintf("f%d", ins.Call.Callee)
		if ins.Call.Callee >= 0 && int(ins.Call.Callee) < len(m.Funcs) {
			name = m.Funcs[ins.Call.Callee].Name
		}
		args := make([]string, len(ins.Call.Args))
		for i, a := range ins.Call.Args {
			args[i] = fmt.Sprintf("%%%d", a)
		}
		return fmt.Sprintf("%%%d = call %s %s(%s)", ins.Dst, t, name, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<instr %d>", ins.Kind)
	}
}

// FormatTerm renders a terminator as Dump prints it.
func FormatTerm(t *Terminator) string {
	switch t.Kind {
	case TermReturn:
		if t.Return.HasValue {
			return fmt.Sprintf("return %%%d", t.Return.Value)
		}
		return "return"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %%%d then bb%d else bb%d", t.If.Cond, t.If.Then, t.If.Else)
	case TermUnreachable:
		return "unreachable"
	case TermNone:
		return "<unterminated>"
	default:
		return "<term?>"
	}
}
