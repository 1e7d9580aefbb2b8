package tools

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// PluginManifest describes a plugin.
type PluginManifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
}

// Plugin is a named bundle of tools installed into a registry together.
type Plugin struct {
	Manifest PluginManifest
	Tools    []Tool
}

// PluginManager installs plugins into a registry and removes them by name.
type PluginManager struct {
	registry *Registry

	mu      sync.Mutex
	order   []string
	plugins map[string]Plugin
}

// NewPluginManager creates a manager that installs into r.
func NewPluginManager(r *Registry) *PluginManager {
	return &PluginManager{registry: r, plugins: map[string]Plugin{}}
}

// Register installs every tool of p. Names must be unique, and a plugin whose
// tools fail to register leaves the registry as it was.
func (m *PluginManager) Register(p Plugin) error {
	name := p.Manifest.Name
	if name == "" {
		return fmt.Errorf("plugin has no name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}

	replaced := make([]Tool, 0, len(p.Tools))
	installed := make([]ToolType, 0, len(p.Tools))
	for _, tool := range p.Tools {
		prev, hadPrev := m.registry.Get(tool.Type)
		if err := m.registry.Register(tool); err != nil {
			m.rollback(installed, replaced)
			return fmt.Errorf("plugin %q: %w", name, err)
		}
		installed = append(installed, tool.Type)
		if hadPrev {
			replaced = append(replaced, prev)
		}
	}

	m.plugins[name] = p
	m.order = append(m.order, name)
	m.registry.logger.Debug("plugin registered",
		zap.String("plugin", name),
		zap.String("version", p.Manifest.Version),
		zap.Int("tools", len(p.Tools)),
	)
	return nil
}

func (m *PluginManager) rollback(installed []ToolType, replaced []Tool) {
	for _, t := range installed {
		m.registry.Unregister(t)
	}
	for _, tool := range replaced {
		_ = m.registry.Register(tool)
	}
}

// Unregister removes the tools of the named plugin.
func (m *PluginManager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.plugins[name]
	if !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	for _, tool := range p.Tools {
		m.registry.Unregister(tool.Type)
	}

	delete(m.plugins, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get looks up a plugin by name.
func (m *PluginManager) Get(name string) (Plugin, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plugins[name]
	return p, ok
}

// GetAll returns the plugins in registration order.
func (m *PluginManager) GetAll() []Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}
