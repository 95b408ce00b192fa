package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// parseIntField parses raw as a strict JSON integer literal. Booleans, floats,
// strings, and fractional or exponent forms all fail with sentinel — JSON has
// no integer type of its own, so the boundary is where integer-likeness is
// decided, not the service layer.
func parseIntField(raw json.RawMessage, sentinel error) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, sentinel
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, sentinel
	}
	return n, nil
}
