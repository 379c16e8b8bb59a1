package api

/*
#include "bindings.h"
*/
import "C"

import "fmt"

// LibraryVersion returns the version of the native engine as a string.
func LibraryVersion() (string, error) {
	v := uint64(C.SBVersionNumber())
	major, minor, patch := v>>32, (v>>16)&0xffff, v&0xffff
	if v == 0 {
		return "", fmt.Errorf("engine reported no version")
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}
