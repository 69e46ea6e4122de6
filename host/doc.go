// Package host exposes the error-channel ABI to WebAssembly guests and
// captures engine failures into error channels.
//
// The host module "wasmkit:errchan/channel" provides two functions, the Go
// rebuild of the native engine's error surface:
//
//	error-message: func(h: handle) -> (ptr: u32, len: u32)
//	error-drop:    func(h: handle)
//
// error-message renders the channel's diagnostic into guest linear memory
// through the guest's exported realloc; the guest owns the returned buffer.
// error-drop releases the handle exactly once. Violating the contract
// (an unknown or already released handle, or a failed guest allocation)
// traps the instance: there is no secondary channel for an error that occurs
// while reporting an error.
//
// On the capture side, Capture classifies errors returned by wazero calls
// (traps, guest exits, cancellation) into structured diagnostics.
package host
