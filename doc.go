// Package errchan implements the error-channel pattern for WebAssembly
// embeddings: fallible operations surface their outcome as either a value or
// an owned, immutable error object carrying a rendered diagnostic message.
//
// The package rebuilds, in memory-safe Go, the opaque-error-handle contract
// that native engine ABIs express as "pointer plus explicit delete". On the Go
// side the hazards of that contract (double-free, use-after-free, producing
// both a value and an error) are made unrepresentable by construction instead
// of being caller discipline.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	errchan/         Root package: Error value, Result union, Memory/Allocator interfaces
//	├── diag/        Structured diagnostics behind the rendered message
//	├── handle/      Opaque handle table for consumers across the ABI boundary
//	├── host/        wazero host module exposing error-message/error-drop to guests
//	└── runtime/     Embedder API: load modules, invoke exports, receive Results
//
// # Quick Start
//
// Invoke a guest export and handle the outcome:
//
//	rt, err := runtime.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Load(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	if res := inst.Invoke(ctx, "process", 42); !res.OK() {
//	    fmt.Println(res.Err().Text())
//	}
//
// # Ownership Model
//
// An Error is immutable after construction and safe for concurrent reads.
// Within Go it needs no explicit release; the garbage collector reclaims it.
// The explicit Live -> Released lifecycle exists only at the ABI boundary,
// where consumers hold integer handles into a handle.Table and must drop each
// handle exactly once. The table rejects double drops and resolves released
// handles to nothing, so a stale handle cannot reach freed storage.
//
// # Thread Safety
//
// Error and Result values are immutable and safe to share. handle.Table is
// safe for concurrent use. runtime.Instance is NOT thread-safe and should be
// used by a single goroutine, or access must be synchronized.
package errchan
