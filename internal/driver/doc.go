// Package driver wires the lev phases together.
//
// CompileFile and CompileSource run lex → parse → lower → validate up to
// the requested Phase and keep every intermediate artifact in a Result. The
// first phase error stops the pipeline; it is kept as-is in Result.Err and
// converted into a diag.Diagnostic in Result.Bag. Run executes the lowered
// module on the IR interpreter, Emit renders it as lev IR or LLVM assembly.
//
// CheckDir compiles every *.lev file under a directory in parallel and can
// reuse earlier results from an on-disk msgpack cache keyed by file content.
package driver
