package core_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testops-io/testops-go/pkg/config"
	"github.com/testops-io/testops-go/pkg/core"
	"github.com/testops-io/testops-go/pkg/errors"
	"github.com/testops-io/testops-go/pkg/logging"
	"github.com/testops-io/testops-go/pkg/schema"
	"github.com/testops-io/testops-go/pkg/transport/graphql"
	"github.com/testops-io/testops-go/pkg/validation"
)

// failingValidator always rejects, standing in for the external domain
// validation collaborator.
type failingValidator struct{}

func (failingValidator) Validate(interface{}) error {
	return errors.WrapError(stderrors.New("scope is malformed"), errors.ErrValidation, "domain validation")
}

type testHarness struct {
	executor *core.Executor
	recorder *logging.Recorder
	calls    *atomic.Int64
	server   *httptest.Server
}

// newHarness spins up a counting mock endpoint and an executor wired
// with the real query validator and an instant backoff sleeper.
func newHarness(t *testing.T, handler http.HandlerFunc, opts ...core.ExecutorOption) *testHarness {
	t.Helper()

	calls := &atomic.Int64{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Endpoint = server.URL

	recorder := logging.NewRecorder()
	queryValidator, err := validation.NewQueryValidator(schema.SDL, recorder)
	require.NoError(t, err)

	client := graphql.NewClient(recorder, graphql.WithRetryOptions(
		graphql.WithSleep(func(context.Context, time.Duration) error { return nil }),
	))

	opts = append([]core.ExecutorOption{
		core.WithLogger(recorder),
		core.WithClient(client),
	}, opts...)

	executor, err := core.NewExecutor(cfg, queryValidator, opts...)
	require.NoError(t, err)

	return &testHarness{executor: executor, recorder: recorder, calls: calls, server: server}
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestExecute_SimpleQuery(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{"testData":[{"id":"1"}]}}`))

	resp, err := h.executor.Execute(context.Background(), `query { testData { id } }`, map[string]interface{}{}, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"testData":[{"id":"1"}]}`, string(resp.Data))
	assert.False(t, resp.HasErrors())
	assert.Equal(t, int64(1), h.calls.Load())
	assert.Empty(t, h.recorder.ByLevel(logging.WarnLevel))
}

func TestExecute_SyntacticallyInvalidQueryNeverHitsNetwork(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{}}`))

	_, err := h.executor.Execute(context.Background(), `query { testData {`, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOperation))
	assert.Contains(t, err.Error(), "validation")
	assert.Equal(t, int64(0), h.calls.Load())
}

func TestExecute_SchemaInvalidQueryNeverHitsNetwork(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{}}`))

	_, err := h.executor.Execute(context.Background(), `query { bogus { id } }`, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOperation))
	assert.Equal(t, int64(0), h.calls.Load())
}

func TestExecute_FailedDomainValidationNeverHitsNetwork(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{}}`), core.WithDomainValidator(failingValidator{}))

	_, err := h.executor.Execute(context.Background(),
		`query TestData($scope: String) { testData(scope: $scope) { id } }`,
		map[string]interface{}{"scope": 1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOperation))
	assert.Contains(t, err.Error(), "scope is malformed")
	assert.Equal(t, int64(0), h.calls.Load())
}

func TestExecute_EmptyVariablesSkipDomainValidation(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{"testData":[]}}`), core.WithDomainValidator(failingValidator{}))

	_, err := h.executor.Execute(context.Background(), `query { testData { id } }`, map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.calls.Load())
}

func TestExecute_TransientFailuresThenSuccess(t *testing.T) {
	var served atomic.Int64
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if served.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"testData":[{"id":"1"}]}}`))
	})

	resp, err := h.executor.Execute(context.Background(), `query { testData { id } }`, nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.HasData())
	assert.Equal(t, int64(3), h.calls.Load())

	warns := h.recorder.ByLevel(logging.WarnLevel)
	require.Len(t, warns, 2)
	var lastDelay int64
	for i, w := range warns {
		assert.Equal(t, i+1, w.Fields["attempt"])
		delay := w.Fields["backoff_ms"].(int64)
		assert.GreaterOrEqual(t, delay, lastDelay)
		assert.LessOrEqual(t, delay, int64(10000))
		lastDelay = delay
	}
}

func TestExecute_RetriesExhausted(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := h.executor.Execute(context.Background(), `query { testData { id } }`, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOperation))
	assert.Contains(t, err.Error(), "HTTP 502")

	// Default cap of 3 retries means 4 total attempts
	assert.Equal(t, int64(4), h.calls.Load())
	assert.Len(t, h.recorder.ByLevel(logging.WarnLevel), 3)
}

func TestExecute_GraphQLErrorsReturnedNotRaised(t *testing.T) {
	h := newHarness(t, jsonHandler(
		`{"data":{"testData":[{"id":"1"}]},"errors":[{"message":"field deprecated","path":["testData"]}]}`))

	resp, err := h.executor.Execute(context.Background(), `query { testData { id } }`, nil, nil)
	require.NoError(t, err)

	// Partial success: both halves present
	assert.True(t, resp.HasData())
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "field deprecated", resp.Errors[0].Message)
	assert.Equal(t, []string{"testData"}, resp.Errors[0].Path)

	// Logged as an error condition, one attempt, no retries
	require.NotEmpty(t, h.recorder.ByLevel(logging.ErrorLevel))
	assert.Equal(t, int64(1), h.calls.Load())
	assert.Empty(t, h.recorder.ByLevel(logging.WarnLevel))
}

func TestExecute_HeaderMergePreservesDefaults(t *testing.T) {
	var gotAccept, gotCustom, gotAuth string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotCustom = r.Header.Get("X-Trace-Id")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"testData":[]}}`))
	})

	token := "token-xyz"
	_, err := h.executor.Execute(context.Background(), `query { testData { id } }`, nil, &config.Override{
		AuthToken: &token,
		Headers:   map[string]string{"X-Trace-Id": "trace-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotAccept, "default header survives override")
	assert.Equal(t, "trace-1", gotCustom)
	assert.Equal(t, "token-xyz", gotAuth)
}

func TestExecute_StartAndCompletionLogged(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{"testData":[]}}`))

	_, err := h.executor.Execute(context.Background(), `query { testData { id } }`, nil, nil)
	require.NoError(t, err)

	infos := h.recorder.ByLevel(logging.InfoLevel)
	require.Len(t, infos, 2)
	assert.Equal(t, false, infos[0].Fields["has_variables"])
	assert.Equal(t, h.server.URL, infos[0].Fields["endpoint"])
	assert.Equal(t, true, infos[1].Fields["success"])
	assert.Equal(t, true, infos[1].Fields["has_data"])
	assert.Equal(t, false, infos[1].Fields["has_errors"])
	assert.Equal(t, infos[0].Fields["request_id"], infos[1].Fields["request_id"])
}

func TestQuery_TypedDecode(t *testing.T) {
	h := newHarness(t, jsonHandler(`{"data":{"testData":[{"id":"1","name":"orders"}]}}`))

	type payload struct {
		TestData []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"testData"`
	}

	out, err := core.Query[payload](context.Background(), h.executor, `query { testData { id name } }`, nil)
	require.NoError(t, err)
	require.Len(t, out.TestData, 1)
	assert.Equal(t, "1", out.TestData[0].ID)
	assert.Equal(t, "orders", out.TestData[0].Name)
}

func TestNewExecutor_RejectsBadConfig(t *testing.T) {
	queryValidator, err := validation.NewQueryValidator(schema.SDL, logging.NewNop())
	require.NoError(t, err)

	_, err = core.NewExecutor(config.Default(), queryValidator)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	cfg := config.Default()
	cfg.Endpoint = "https://api.example.com/graphql"
	_, err = core.NewExecutor(cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
