//go:build cgo

package sunbind

import (
	"github.com/sunbind/sunbind/internal/api"
)

func libraryVersionImpl() (string, error) {
	return api.LibraryVersion()
}
