// Package runtime is the embedder-facing API: load a module, instantiate
// it, invoke exports, and receive each outcome as a tagged Result that
// holds either the return values or an owned error channel, never both.
//
//	rt, err := runtime.New(ctx)
//	if err != nil { ... }
//	defer rt.Close(ctx)
//
//	mod, err := rt.Load(ctx, wasmBytes)
//	if err != nil { ... }
//
//	inst, err := mod.Instantiate(ctx)
//	if err != nil { ... }
//	defer inst.Close(ctx)
//
//	v, e := inst.Invoke(ctx, "add", 2, 3).Unpack()
//
// Compiled modules are cached by content hash, so loading the same binary
// repeatedly (instance pooling, request-scoped instantiation) compiles once.
//
// Runtime and Module are safe for concurrent use. Instance is NOT
// thread-safe and should be used by a single goroutine, or access must be
// synchronized.
package runtime
