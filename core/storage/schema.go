package storage

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the JSON Schema the persisted snapshot must satisfy
// before it is decoded. reputationScores and scanLog are optional for
// compatibility with older snapshots.
const snapshotSchema = `{
  "type": "object",
  "required": ["chain", "itemMaster", "inventories"],
  "properties": {
    "chain": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["height", "timestamp", "prevHash", "hash", "record"],
        "properties": {
          "height": {"type": "integer", "minimum": 0},
          "timestamp": {"type": "string"},
          "prevHash": {"type": "string"},
          "hash": {"type": "string"},
          "record": {"type": "object", "required": ["type", "timestamp"]}
        }
      }
    },
    "itemMaster": {"type": "object"},
    "inventories": {"type": "object"},
    "reputationScores": {
      "type": "object",
      "additionalProperties": {"type": "integer"}
    },
    "scanLog": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

func validateSnapshotBytes(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if !result.Valid() {
		msg := "snapshot violates schema"
		for _, e := range result.Errors() {
			msg += "; " + e.String()
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
