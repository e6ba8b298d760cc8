package entity

// Node is one value in a serialized variable tree.
type Node struct {
	Name      string      `json:"name,omitempty"`
	Type      string      `json:"type"`
	Value     interface{} `json:"value,omitempty"`
	Length    *int        `json:"length,omitempty"`
	Size      *int        `json:"size,omitempty"`
	Handle    string      `json:"handle,omitempty"`
	Circular  bool        `json:"circular,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
	Error     string      `json:"error,omitempty"`
	Children  []*Node     `json:"children,omitempty"`
}

// Inspection is a budgeted serialization of variables.
type Inspection struct {
	Variables       []*Node `json:"variables"`
	EstimatedTokens int     `json:"estimatedTokens"`
	Truncated       bool    `json:"truncated"`
}

// InspectRequest selects what to inspect. Handle wins over Path, and Path wins over a whole frame.
type InspectRequest struct {
	ThreadID uint64 `json:"threadId"`
	Frame    int    `json:"frame"`
	Path     string `json:"path,omitempty"`
	Handle   string `json:"handle,omitempty"`
	Depth    *int   `json:"depth,omitempty"`
	Budget   *int   `json:"budget,omitempty"`
}

// EvaluateRequest evaluates an expression in a suspended frame.
type EvaluateRequest struct {
	ThreadID   uint64 `json:"threadId"`
	Frame      int    `json:"frame"`
	Expression string `json:"expression"`
}

// EvaluateResult reports the outcome of an evaluation. Failures are reported in Error rather than as a request error.
type EvaluateResult struct {
	OK    bool        `json:"ok"`
	Type  string      `json:"type,omitempty"`
	Value interface{} `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}
