// Package validate contains simple input validation helpers.
package validate

import (
	"fmt"
	"strings"
)

// Required rejects empty or all-whitespace values with a named error.
func Required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
