package ir

type (
	// FuncID indexes Module.Funcs.
	FuncID int32
	// BlockID indexes Func.Blocks.
	BlockID int32
	// Slot indexes Func.Slots (a stack allocation).
	Slot int32
	// Value indexes Func.Values (an SSA result).
	Value int32
)

const (
	NoFuncID  FuncID  = -1
	NoBlockID BlockID = -1
	NoSlot    Slot    = -1
	NoValue   Value   = -1
)
