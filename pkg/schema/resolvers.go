package schema

import (
	"context"

	"github.com/testops-io/testops-go/pkg/config"
	"github.com/testops-io/testops-go/pkg/core"
	"github.com/testops-io/testops-go/pkg/validation"
)

// Fixed documents dispatched by the resolvers. Each selects the full
// field set of its entity; callers narrow via their own queries against
// the executor if they need less.
const (
	queryTestData = `query TestData($scope: String) {
  testData(scope: $scope) {
    id name scope schema valid_from valid_to created_at updated_at
  }
}`

	queryTestFlow = `query TestFlow($id: ID!) {
  testFlow(id: $id) {
    id name flow_type test_data_id config status created_at updated_at
  }
}`

	queryTestResults = `query TestResults($flow_id: ID!) {
  testResults(flow_id: $flow_id) {
    id flow_id status duration_ms error created_at
  }
}`

	mutationCreateTestData = `mutation CreateTestData($input: CreateTestDataInput!) {
  createTestData(input: $input) {
    id name scope schema valid_from valid_to created_at updated_at
  }
}`

	mutationCreateTestFlow = `mutation CreateTestFlow($input: CreateTestFlowInput!) {
  createTestFlow(input: $input) {
    id name flow_type test_data_id config status created_at updated_at
  }
}`

	mutationSubmitTestResult = `mutation SubmitTestResult($input: SubmitTestResultInput!) {
  submitTestResult(input: $input) {
    id flow_id status duration_ms error created_at
  }
}`
)

// Executor is the request execution dependency of the resolver layer.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, override *config.Override) (*core.Response, error)
}

// Resolver binds the TestOps fields to an executor. Field resolvers are
// independent and stateless: each builds its fixed document, dispatches
// it, and returns decoded data only. GraphQL errors surfaced by the
// executor's Response are discarded at this layer; callers here see
// data or an error, never both.
type Resolver struct {
	executor Executor

	createTestDataInput   *validation.SchemaValidator
	createTestFlowInput   *validation.SchemaValidator
	submitTestResultInput *validation.SchemaValidator
}

// NewResolver compiles the input schemas and binds the resolvers.
func NewResolver(executor Executor) (*Resolver, error) {
	createData, err := validation.NewSchemaValidator(createTestDataInputSchema)
	if err != nil {
		return nil, err
	}
	createFlow, err := validation.NewSchemaValidator(createTestFlowInputSchema)
	if err != nil {
		return nil, err
	}
	submitResult, err := validation.NewSchemaValidator(submitTestResultInputSchema)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		executor:              executor,
		createTestDataInput:   createData,
		createTestFlowInput:   createFlow,
		submitTestResultInput: submitResult,
	}, nil
}

// TestData lists test data, optionally narrowed to one scope.
func (r *Resolver) TestData(ctx context.Context, scope string) ([]TestData, error) {
	variables := map[string]interface{}{}
	if scope != "" {
		variables["scope"] = scope
	}
	resp, err := r.executor.Execute(ctx, queryTestData, variables, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		TestData []TestData `json:"testData"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.TestData, nil
}

// TestFlow fetches one flow by id; nil when the remote has none.
func (r *Resolver) TestFlow(ctx context.Context, id string) (*TestFlow, error) {
	resp, err := r.executor.Execute(ctx, queryTestFlow, map[string]interface{}{"id": id}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		TestFlow *TestFlow `json:"testFlow"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.TestFlow, nil
}

// TestResults lists the results recorded for a flow.
func (r *Resolver) TestResults(ctx context.Context, flowID string) ([]TestResult, error) {
	resp, err := r.executor.Execute(ctx, queryTestResults, map[string]interface{}{"flow_id": flowID}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		TestResults []TestResult `json:"testResults"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.TestResults, nil
}

// CreateTestData validates input, then dispatches the mutation.
// Validation failures surface as-is, before any network call.
func (r *Resolver) CreateTestData(ctx context.Context, input CreateTestDataInput) (*TestData, error) {
	if err := r.createTestDataInput.Validate(input); err != nil {
		return nil, err
	}
	resp, err := r.executor.Execute(ctx, mutationCreateTestData, map[string]interface{}{"input": input}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		CreateTestData *TestData `json:"createTestData"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.CreateTestData, nil
}

// CreateTestFlow validates input, then dispatches the mutation.
func (r *Resolver) CreateTestFlow(ctx context.Context, input CreateTestFlowInput) (*TestFlow, error) {
	if err := r.createTestFlowInput.Validate(input); err != nil {
		return nil, err
	}
	resp, err := r.executor.Execute(ctx, mutationCreateTestFlow, map[string]interface{}{"input": input}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		CreateTestFlow *TestFlow `json:"createTestFlow"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.CreateTestFlow, nil
}

// SubmitTestResult validates input, then dispatches the mutation.
func (r *Resolver) SubmitTestResult(ctx context.Context, input SubmitTestResultInput) (*TestResult, error) {
	if err := r.submitTestResultInput.Validate(input); err != nil {
		return nil, err
	}
	resp, err := r.executor.Execute(ctx, mutationSubmitTestResult, map[string]interface{}{"input": input}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		SubmitTestResult *TestResult `json:"submitTestResult"`
	}
	if err := resp.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.SubmitTestResult, nil
}
