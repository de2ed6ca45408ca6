// Package ticketboardv1 holds the wire messages of the ticketboard.v1 API.
// They are plain structs carried by connect with a JSON codec.
package ticketboardv1

import (
	"encoding/json"
	"fmt"
)

// CodecName replaces connect's built-in "json" codec, which only accepts
// protobuf messages.
const CodecName = "json"

type JSONCodec struct{}

func (JSONCodec) Name() string {
	return CodecName
}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return b, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return nil
}
