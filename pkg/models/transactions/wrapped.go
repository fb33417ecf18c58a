package transactions

import (
	"encoding/json"
	"fmt"
)

// Memos and Signers are wrapped in a single-key object on the wire.

func marshalWrapped(key string, v any) ([]byte, error) {
	return json.Marshal(map[string]any{key: v})
}

func unmarshalWrapped(key string, data []byte, v any) error {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	inner, ok := outer[key]
	if !ok {
		return fmt.Errorf("missing %q wrapper", key)
	}
	return json.Unmarshal(inner, v)
}
