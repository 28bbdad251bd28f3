package validation

import (
	"bytes"
	"encoding/json"
	"io"
)

// MaxPayloadBytes bounds how much of a request body is read
const MaxPayloadBytes = 1 << 20

// DecodePayload reads a JSON object from r. An empty, unreadable or
// non-object body yields an empty payload rather than an error, leaving the
// required-field checks to report what is missing.
func DecodePayload(r io.Reader) map[string]interface{} {
	payload := map[string]interface{}{}
	if r == nil {
		return payload
	}

	body, err := io.ReadAll(io.LimitReader(r, MaxPayloadBytes))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return payload
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded map[string]interface{}
	if err := dec.Decode(&decoded); err != nil || decoded == nil {
		return payload
	}
	return decoded
}
