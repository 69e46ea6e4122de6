// Package wasmtest provides hand-assembled WebAssembly binaries for tests,
// so the suite needs no external toolchain.
package wasmtest

// SimpleModule returns a core module with three exports:
//
//	add(a: i32, b: i32) -> i32    returns a+b
//	div(a: i32, b: i32) -> i32    i32.div_s, traps on b == 0
//	trap()                        executes unreachable
func SimpleModule() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version

		// type section: (i32,i32)->i32, ()->()
		0x01, 0x0a, 0x02,
		0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f,
		0x60, 0x00, 0x00,

		// function section: add, div, trap
		0x03, 0x04, 0x03, 0x00, 0x00, 0x01,

		// export section
		0x07, 0x14, 0x03,
		0x03, 'a', 'd', 'd', 0x00, 0x00,
		0x03, 'd', 'i', 'v', 0x00, 0x01,
		0x04, 't', 'r', 'a', 'p', 0x00, 0x02,

		// code section
		0x0a, 0x15, 0x03,
		0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b, // add: local.get 0; local.get 1; i32.add
		0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6d, 0x0b, // div: local.get 0; local.get 1; i32.div_s
		0x03, 0x00, 0x00, 0x0b, // trap: unreachable
	}
}

// ConsumerModule returns a core module that imports the error-channel host
// ABI from "wasmkit:errchan/channel" and exports:
//
//	memory                       one page of linear memory
//	alloc(size: i32) -> i32      bump-free allocator: always returns 16
//	msglen(h: i32) -> i32        calls error-message(h), returns the length
//	consume(h: i32)              calls error-drop(h)
//
// After msglen returns n, the rendered message occupies memory [16, 16+n).
func ConsumerModule() []byte {
	mod := []byte("wasmkit:errchan/channel")

	b := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version

		// type section: (i32)->(i32,i32), (i32)->(), (i32)->(i32)
		0x01, 0x10, 0x03,
		0x60, 0x01, 0x7f, 0x02, 0x7f, 0x7f,
		0x60, 0x01, 0x7f, 0x00,
		0x60, 0x01, 0x7f, 0x01, 0x7f,

		// import section: error-message (type 0), error-drop (type 1)
		0x02, 0x4e, 0x02,
	}
	b = append(b, byte(len(mod)))
	b = append(b, mod...)
	b = append(b, 0x0d)
	b = append(b, []byte("error-message")...)
	b = append(b, 0x00, 0x00)
	b = append(b, byte(len(mod)))
	b = append(b, mod...)
	b = append(b, 0x0a)
	b = append(b, []byte("error-drop")...)
	b = append(b, 0x00, 0x01)

	b = append(b,
		// function section: alloc, msglen, consume
		0x03, 0x04, 0x03, 0x02, 0x02, 0x01,

		// memory section: 1 page
		0x05, 0x03, 0x01, 0x00, 0x01,

		// export section
		0x07, 0x25, 0x04,
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
		0x05, 'a', 'l', 'l', 'o', 'c', 0x00, 0x02,
		0x06, 'm', 's', 'g', 'l', 'e', 'n', 0x00, 0x03,
		0x07, 'c', 'o', 'n', 's', 'u', 'm', 'e', 0x00, 0x04,

		// code section
		0x0a, 0x1b, 0x03,
		// alloc: i32.const 16
		0x04, 0x00, 0x41, 0x10, 0x0b,
		// msglen: call error-message; keep len, drop ptr
		0x0d, 0x01, 0x01, 0x7f, 0x20, 0x00, 0x10, 0x00, 0x21, 0x01, 0x1a, 0x20, 0x01, 0x0b,
		// consume: call error-drop
		0x06, 0x00, 0x20, 0x00, 0x10, 0x01, 0x0b,
	)
	return b
}

// MessageOffset is where ConsumerModule's allocator places every buffer.
const MessageOffset = 16
