package schema

// JSON Schemas backing domain validation of mutation inputs. These
// mirror the non-null input fields of the SDL plus the business rules
// the remote service enforces (non-empty names, known enum values).

const createTestDataInputSchema = `{
  "type": "object",
  "required": ["name", "scope", "valid_from", "valid_to"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "scope": {"type": "string", "minLength": 1},
    "schema": {"type": "object"},
    "valid_from": {"type": "string", "minLength": 1},
    "valid_to": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false
}`

const createTestFlowInputSchema = `{
  "type": "object",
  "required": ["name", "flow_type", "test_data_id"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "flow_type": {"type": "string", "minLength": 1},
    "test_data_id": {"type": "string", "minLength": 1},
    "config": {"type": "object"}
  },
  "additionalProperties": false
}`

const submitTestResultInputSchema = `{
  "type": "object",
  "required": ["flow_id", "status", "duration_ms"],
  "properties": {
    "flow_id": {"type": "string", "minLength": 1},
    "status": {"enum": ["pass", "fail", "error", "skipped"]},
    "duration_ms": {"type": "integer", "minimum": 0},
    "error": {"type": "string"}
  },
  "additionalProperties": false
}`
