package messages

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/acpkit/acp-conform/pkg/acperrs"
)

// envelope mirrors the superset of JSON-RPC fields so a single
// unmarshal can drive classification. Raw fields distinguish a value
// of null from an absent key.
type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	Result  json.RawMessage `json:"result"`
	Error   *ErrorObject    `json:"error"`
}

// Decode parses one wire line into its message variant.
// Only a line that fails JSON parsing outright yields a
// malformed_message protocol error. Valid JSON that matches no
// JSON-RPC shape, including non-object values like arrays, decodes as
// Unknown rather than failing, so the correlator can skip it and keep
// waiting.
func Decode(line []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		if json.Valid(line) {
			return unknownFrame(line), nil
		}

		return nil, acperrs.NewProtocolError(
			acperrs.ErrCodeMalformedMessage,
			"line is not valid JSON",
			err,
		).WithLine(string(line))
	}

	id, hasID := decodeID(env.ID)

	switch {
	case hasID && env.Error != nil:
		return ErrorResponse{ID: id, Error: *env.Error}, nil
	case hasID && env.Result != nil:
		return SuccessResponse{ID: id, Result: env.Result}, nil
	case hasID && env.Method != "":
		return Request{ID: id, Method: env.Method, Params: env.Params}, nil
	case !hasID && env.Method != "":
		return Notification{Method: env.Method, Params: env.Params}, nil
	default:
		return unknownFrame(line), nil
	}
}

func unknownFrame(line []byte) Unknown {
	raw := make(json.RawMessage, len(line))
	copy(raw, line)

	return Unknown{Raw: raw}
}

// decodeID extracts an integer request id. Absent, null, or
// non-integer ids all count as "no id": the protocol under test
// assigns small integers, so anything else can never match a pending
// call.
func decodeID(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false
	}

	id, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
