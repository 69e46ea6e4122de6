// Package diag provides the structured diagnostic type behind an error
// channel's rendered message.
//
// Diagnostics are categorized by Source (where the failure originated) and
// Code (failure category), and carry a human-readable detail, an optional
// cause chain, and any guest stack frames captured from the engine.
//
// Use the Builder for structured construction:
//
//	d := diag.New(diag.SourceTrap, diag.CodeOOB).
//		Detail("load at offset %d past memory end", off).
//		Frames(frames).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	d := diag.Trap(diag.CodeUnreachable, cause)
//	d := diag.NotFound("export", name)
//
// All diagnostics implement the standard error interface and support
// errors.Is/As.
package diag
