package runtime

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"

	"github.com/wasmkit/errchan/diag"
)

// Module is a compiled core module, instantiable any number of times.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Exports returns the module's exported function names, sorted.
func (m *Module) Exports() []string {
	fns := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate creates a fresh anonymous instance of the module.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	mod, err := m.runtime.wazero.InstantiateModule(ctx, m.compiled,
		wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, diag.Link(err)
	}
	return &Instance{mod: mod}, nil
}
