package messages

import (
	"encoding/json"
	"fmt"
)

// outgoingRequest is the wire form of a harness-issued request.
type outgoingRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// EncodeRequest serializes a request as a single JSON-RPC 2.0 line
// without the trailing newline; the transport owns framing.
func EncodeRequest(id int64, method string, params any) ([]byte, error) {
	if params == nil {
		params = map[string]any{}
	}

	data, err := json.Marshal(outgoingRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request %q: %w", method, err)
	}

	return data, nil
}
