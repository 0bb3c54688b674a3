package schema

// SDL is the TestOps wire contract consumed by the schema-aware query
// validation pass. Field names are a fixed contract with the remote
// service, not behavior owned by this client.
const SDL = `
scalar JSON

enum FlowStatus {
  pending
  running
  completed
  failed
  cancelled
}

enum ResultStatus {
  pass
  fail
  error
  skipped
}

type TestData {
  id: ID!
  name: String!
  scope: String!
  schema: JSON
  valid_from: String!
  valid_to: String!
  created_at: String!
  updated_at: String
}

type TestFlow {
  id: ID!
  name: String!
  flow_type: String!
  test_data_id: ID!
  config: JSON
  status: FlowStatus!
  created_at: String!
  updated_at: String
}

type TestResult {
  id: ID!
  flow_id: ID!
  status: ResultStatus!
  duration_ms: Int!
  error: String
  created_at: String!
}

input CreateTestDataInput {
  name: String!
  scope: String!
  schema: JSON
  valid_from: String!
  valid_to: String!
}

input CreateTestFlowInput {
  name: String!
  flow_type: String!
  test_data_id: ID!
  config: JSON
}

input SubmitTestResultInput {
  flow_id: ID!
  status: ResultStatus!
  duration_ms: Int!
  error: String
}

type Query {
  testData(scope: String): [TestData!]!
  testFlow(id: ID!): TestFlow
  testResults(flow_id: ID!): [TestResult!]!
}

type Mutation {
  createTestData(input: CreateTestDataInput!): TestData!
  createTestFlow(input: CreateTestFlowInput!): TestFlow!
  submitTestResult(input: SubmitTestResultInput!): TestResult!
}
`
