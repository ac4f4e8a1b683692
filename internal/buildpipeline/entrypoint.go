package buildpipeline

import (
	"fmt"

	"lev/internal/ir"
)

// EntryName is the function Run starts from.
const EntryName = "main"

// ValidateEntrypoint ensures the module has a runnable main.
func ValidateEntrypoint(mod *ir.Module) error {
	if mod == nil {
		return fmt.Errorf("missing lowered module")
	}
	fn, ok := mod.Func(EntryName)
	if !ok {
		return fmt.Errorf("no '%s' function found", EntryName)
	}
	if len(fn.Params) != 0 {
		return fmt.Errorf("'%s' must not take parameters, found %d", EntryName, len(fn.Params))
	}
	return nil
}
