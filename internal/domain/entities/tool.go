package entities

import (
	"time"
)

// ToolData is the persisted catalog record for a registered tool: which
// adapter type it is, what it is called, and its configuration overrides.
type ToolData struct {
	ID            string            `json:"id"`
	ToolType      string            `json:"tool_type"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Configuration map[string]string `json:"configurations"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type Item struct {
	Type string
}

// Parameter describes one argument of a tool operation, including the
// declarative constraints enforced at the start of each Execute call.
type Parameter struct {
	Name        string
	Type        string
	Enum        []string
	Items       []Item
	Description string
	Required    bool
	MaxLength   int      // strings; 0 means unbounded
	Minimum     *float64 // numbers
	Maximum     *float64 // numbers
}

// Tool is the invocation surface every provider adapter implements.
// Execute takes a JSON object produced by the model and returns a
// JSON-serialized Result. Operational failures are reported inside the
// Result; the error return stays nil so a misbehaving upstream can never
// crash the agent loop.
type Tool interface {
	Name() string
	Description() string
	Configuration() map[string]string
	UpdateConfiguration(config map[string]string)
	FullDescription() string
	Parameters() []Parameter
	Execute(arguments string) (string, error)
}
