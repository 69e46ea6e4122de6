package runtime

import (
	"context"
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wasmkit/errchan/diag"
	"github.com/wasmkit/errchan/host"
)

// Config holds configuration for runtime creation.
type Config struct {
	// MemoryLimitPages caps guest memory per instance in 64KB pages.
	// 0 means the wazero default (4GB).
	MemoryLimitPages uint32

	// CacheSize is the number of compiled modules kept by content hash.
	// 0 means DefaultCacheSize.
	CacheSize int
}

// DefaultCacheSize is the compiled-module cache capacity when Config does
// not say otherwise.
const DefaultCacheSize = 16

// Runtime owns the wazero engine, the error-channel host module, and the
// compiled-module cache. Safe for concurrent use.
type Runtime struct {
	wazero wazero.Runtime
	host   *host.Host
	cache  *lru.Cache[[sha256.Size]byte, wazero.CompiledModule]
}

// New creates a runtime with default configuration.
func New(ctx context.Context) (*Runtime, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates a runtime with custom configuration and registers
// the error-channel host module on it.
func NewWithConfig(ctx context.Context, cfg *Config) (*Runtime, error) {
	rcfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)

	cacheSize := DefaultCacheSize
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			rcfg = rcfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.CacheSize > 0 {
			cacheSize = cfg.CacheSize
		}
	}

	cache, err := lru.New[[sha256.Size]byte, wazero.CompiledModule](cacheSize)
	if err != nil {
		return nil, diag.BadModule("create module cache", err)
	}

	r := wazero.NewRuntimeWithConfig(ctx, rcfg)

	h := host.New()
	if _, err := h.Register(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, diag.Link(err)
	}

	return &Runtime{wazero: r, host: h, cache: cache}, nil
}

// Host returns the error-channel host for handing channels to guests.
func (r *Runtime) Host() *host.Host {
	return r.host
}

// Load compiles a core module, reusing a cached compilation when the same
// bytes were loaded before.
func (r *Runtime) Load(ctx context.Context, wasm []byte) (*Module, error) {
	key := sha256.Sum256(wasm)

	if compiled, ok := r.cache.Get(key); ok {
		Logger().Debug("module load", zap.Bool("cache_hit", true))
		return &Module{runtime: r, compiled: compiled}, nil
	}

	compiled, err := r.wazero.CompileModule(ctx, wasm)
	if err != nil {
		return nil, diag.BadModule("compile module", err)
	}

	r.cache.Add(key, compiled)
	Logger().Debug("module load", zap.Bool("cache_hit", false))
	return &Module{runtime: r, compiled: compiled}, nil
}

// Close releases the host's handle table and every engine resource.
// All instances must be closed before calling this.
func (r *Runtime) Close(ctx context.Context) error {
	r.host.Close()
	return r.wazero.Close(ctx)
}
