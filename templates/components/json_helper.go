package components

import (
	"encoding/json"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// HXHeaders is the hx-headers value that makes htmx send the CSRF token on every request
func HXHeaders(csrfToken string) string {
	if csrfToken == "" {
		return "{}"
	}
	return JSON(map[string]string{"X-CSRF-Token": csrfToken})
}
