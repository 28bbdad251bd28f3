package testutil

import "encoding/json"

// Number returns the given digits as a JSON number
func Number(s string) json.Number {
	return json.Number(s)
}

// NumberPtr returns a pointer to the given digits as a JSON number
func NumberPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}
