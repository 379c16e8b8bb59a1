//go:build !cgo

package sunbind

import (
	"fmt"
)

func libraryVersionImpl() (string, error) {
	return "", fmt.Errorf("native engine unavailable since cgo is disabled")
}
