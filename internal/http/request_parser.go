// Request body parsing. Write payloads arrive as loose JSON objects; the
// recognized fields are lifted out here and everything else is dropped
// before the payload reaches the normalizer.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"finease/internal/core"
)

// Request bodies are small; anything bigger than this is hostile.
const maxBodyBytes = 1 << 20

// parseJSONBody decodes the request body into a loose field map.
// An empty body yields an empty map, not an error.
func parseJSONBody(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]any{}, nil
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.New("body must be a JSON object")
	}
	return fields, nil
}

// rawTransactionFromFields maps the recognized payload fields onto a raw
// transaction. Amount keeps whatever type JSON produced so the normalizer
// can coerce it.
func rawTransactionFromFields(fields map[string]any) core.RawTransaction {
	return core.RawTransaction{
		Owner:       stringValue(fields["owner"]),
		Kind:        stringValue(fields["kind"]),
		Description: stringValue(fields["description"]),
		Category:    stringValue(fields["category"]),
		Amount:      fields["amount"],
		Date:        stringValue(fields["date"]),
	}
}

// stringValue converts a decoded JSON value to a string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
