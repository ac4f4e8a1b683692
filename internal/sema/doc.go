// Package sema tracks lexical scopes while the lowering engine walks a
// program: variable bindings with their stack slots, and the trail of
// statements that decides which type a literal should take.
package sema
