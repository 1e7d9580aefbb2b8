package tools

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/errors"
	"go.uber.org/zap"
)

// Observer is told about every execution.
type Observer interface {
	ObserveExecution(tool ToolType, success bool, code errors.ErrorType, elapsed time.Duration)
}

// table is an immutable snapshot of the registered tools.
type table struct {
	order  []ToolType
	byType map[ToolType]Tool
}

// Registry maps tool identifiers to tools. Reads never lock; writers copy
// the table and swap it in.
type Registry struct {
	tools atomic.Pointer[table]
	// mu serializes writers.
	mu sync.Mutex

	cfg      *config.Config
	logger   *zap.Logger
	observer Observer
}

// RegistryOption tunes a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for execution traces.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver reports every execution to o.
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithConfig sets the configuration used to decode option maps.
func WithConfig(cfg *config.Config) RegistryOption {
	return func(r *Registry) {
		if cfg != nil {
			r.cfg = cfg
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		cfg:    config.NewConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tools.Store(&table{byType: map[ToolType]Tool{}})
	return r
}

// NewDefaultRegistry creates a registry holding every built-in tool.
func NewDefaultRegistry(cfg *config.Config, opts ...RegistryOption) *Registry {
	r := NewRegistry(append([]RegistryOption{WithConfig(cfg)}, opts...)...)
	for _, tool := range Builtins(r.cfg) {
		// Built-ins are well formed.
		_ = r.Register(tool)
	}
	return r
}

// Config returns the configuration the registry decodes options with.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// Register adds tool, replacing any tool with the same identifier.
func (r *Registry) Register(tool Tool) error {
	if tool.Type == "" {
		return fmt.Errorf("tool %q has no identifier", tool.Name)
	}
	if tool.Execute == nil {
		return fmt.Errorf("tool %q has no implementation", tool.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.tools.Load()
	next := &table{
		order:  make([]ToolType, 0, len(old.order)+1),
		byType: make(map[ToolType]Tool, len(old.byType)+1),
	}
	next.order = append(next.order, old.order...)
	for k, v := range old.byType {
		next.byType[k] = v
	}
	if _, exists := next.byType[tool.Type]; !exists {
		next.order = append(next.order, tool.Type)
	}
	next.byType[tool.Type] = tool
	r.tools.Store(next)
	return nil
}

// Unregister removes a tool. It reports whether the tool was registered.
func (r *Registry) Unregister(t ToolType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.tools.Load()
	if _, exists := old.byType[t]; !exists {
		return false
	}
	next := &table{
		order:  make([]ToolType, 0, len(old.order)),
		byType: make(map[ToolType]Tool, len(old.byType)),
	}
	for _, id := range old.order {
		if id != t {
			next.order = append(next.order, id)
			next.byType[id] = old.byType[id]
		}
	}
	r.tools.Store(next)
	return true
}

// Get looks up a tool.
func (r *Registry) Get(t ToolType) (Tool, bool) {
	tool, ok := r.tools.Load().byType[t]
	return tool, ok
}

// Has reports whether a tool is registered.
func (r *Registry) Has(t ToolType) bool {
	_, ok := r.Get(t)
	return ok
}

// GetAll returns the tools in registration order.
func (r *Registry) GetAll() []Tool {
	snapshot := r.tools.Load()
	out := make([]Tool, 0, len(snapshot.order))
	for _, id := range snapshot.order {
		out = append(out, snapshot.byType[id])
	}
	return out
}

// ByCategory returns the tools of one category in registration order.
func (r *Registry) ByCategory(c Category) []Tool {
	var out []Tool
	for _, tool := range r.GetAll() {
		if tool.Category == c {
			out = append(out, tool)
		}
	}
	return out
}

// Execute runs tool t. Failures of any kind, panics included, come back as
// a failed Result.
func (r *Registry) Execute(t ToolType, in Input, opts Options) Result {
	start := time.Now()
	res := r.execute(t, in, opts)
	r.record(t, res, time.Since(start))
	return res
}

// ExecuteMap decodes an untyped option map for tool t and runs it.
func (r *Registry) ExecuteMap(t ToolType, in Input, m map[string]any) Result {
	start := time.Now()
	var res Result
	if !r.Has(t) {
		res = Failed(errors.NewToolNotFoundError(string(t)), nil)
	} else if opts, err := DecodeOptions(t, m, r.cfg); err != nil {
		res = Failed(err, nil)
	} else {
		res = r.execute(t, in, opts)
	}
	r.record(t, res, time.Since(start))
	return res
}

func (r *Registry) execute(t ToolType, in Input, opts Options) (res Result) {
	tool, ok := r.Get(t)
	if !ok {
		return Failed(errors.NewToolNotFoundError(string(t)), nil)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tool panicked", zap.String("tool", string(t)), zap.Any("panic", p))
			res = Failed(errors.NewExecutionError(panicMessage(p), nil), nil)
		}
	}()

	out, err := tool.Execute(in, opts)
	if err != nil {
		return Failed(err, out.Metadata)
	}
	return Succeeded(out)
}

func panicMessage(p any) string {
	switch v := p.(type) {
	case error:
		return errors.Message(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (r *Registry) record(t ToolType, res Result, elapsed time.Duration) {
	if ce := r.logger.Check(zap.DebugLevel, "tool executed"); ce != nil {
		fields := []zap.Field{
			zap.String("tool", string(t)),
			zap.Bool("success", res.Success),
			zap.Duration("elapsed", elapsed),
		}
		if !res.Success {
			fields = append(fields, zap.String("code", string(res.Code)), zap.String("error", res.Error))
		}
		ce.Write(fields...)
	}
	if r.observer != nil {
		r.observer.ObserveExecution(t, res.Success, res.Code, elapsed)
	}
}
