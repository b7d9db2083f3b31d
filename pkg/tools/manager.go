package tools

import (
	"context"
	"slices"
	"strings"

	"github.com/comigor/korea-opendata-go/internal/apperr"
)

// ToolManager manages the available tools
type ToolManager struct {
	tools map[string]Tool
}

// NewToolManager creates a new ToolManager
func NewToolManager(tools ...Tool) *ToolManager {
	m := &ToolManager{
		tools: make(map[string]Tool),
	}
	for _, t := range tools {
		m.RegisterTool(t)
	}
	return m
}

// List returns all registered tools ordered by name
func (m *ToolManager) List() []Tool {
	ts := make([]Tool, 0, len(m.tools))
	for _, t := range m.tools {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b Tool) int { return strings.Compare(a.Name(), b.Name()) })
	return ts
}

// RegisterTool registers a new tool
func (m *ToolManager) RegisterTool(tool Tool) {
	m.tools[tool.Name()] = tool
}

// GetTool retrieves a tool by name
func (m *ToolManager) GetTool(name string) (Tool, error) {
	tool, ok := m.tools[name]
	if !ok {
		return nil, apperr.UnknownTool(name)
	}
	return tool, nil
}

// Call runs the named tool.
func (m *ToolManager) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, err := m.GetTool(name)
	if err != nil {
		return "", err
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Run(ctx, args)
}
