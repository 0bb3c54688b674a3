package schema

// FlowStatus is the lifecycle state of a test flow.
type FlowStatus string

const (
	FlowStatusPending   FlowStatus = "pending"
	FlowStatusRunning   FlowStatus = "running"
	FlowStatusCompleted FlowStatus = "completed"
	FlowStatusFailed    FlowStatus = "failed"
	FlowStatusCancelled FlowStatus = "cancelled"
)

// ResultStatus is the outcome of one test result.
type ResultStatus string

const (
	ResultStatusPass    ResultStatus = "pass"
	ResultStatusFail    ResultStatus = "fail"
	ResultStatusError   ResultStatus = "error"
	ResultStatusSkipped ResultStatus = "skipped"
)

// TestData is a named, scoped dataset with a validity window.
type TestData struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Scope     string                 `json:"scope"`
	Schema    map[string]interface{} `json:"schema,omitempty"`
	ValidFrom string                 `json:"valid_from"`
	ValidTo   string                 `json:"valid_to"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at,omitempty"`
}

// TestFlow is one configured run over a test dataset.
type TestFlow struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	FlowType   string                 `json:"flow_type"`
	TestDataID string                 `json:"test_data_id"`
	Config     map[string]interface{} `json:"config,omitempty"`
	Status     FlowStatus             `json:"status"`
	CreatedAt  string                 `json:"created_at"`
	UpdatedAt  string                 `json:"updated_at,omitempty"`
}

// TestResult is the recorded outcome of a flow execution.
type TestResult struct {
	ID         string       `json:"id"`
	FlowID     string       `json:"flow_id"`
	Status     ResultStatus `json:"status"`
	DurationMs int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
	CreatedAt  string       `json:"created_at"`
}

// CreateTestDataInput is the payload for the createTestData mutation.
type CreateTestDataInput struct {
	Name      string                 `json:"name"`
	Scope     string                 `json:"scope"`
	Schema    map[string]interface{} `json:"schema,omitempty"`
	ValidFrom string                 `json:"valid_from"`
	ValidTo   string                 `json:"valid_to"`
}

// CreateTestFlowInput is the payload for the createTestFlow mutation.
type CreateTestFlowInput struct {
	Name       string                 `json:"name"`
	FlowType   string                 `json:"flow_type"`
	TestDataID string                 `json:"test_data_id"`
	Config     map[string]interface{} `json:"config,omitempty"`
}

// SubmitTestResultInput is the payload for the submitTestResult mutation.
type SubmitTestResultInput struct {
	FlowID     string       `json:"flow_id"`
	Status     ResultStatus `json:"status"`
	DurationMs int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
}
