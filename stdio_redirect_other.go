//go:build !unix

package main

import "os"

// Fallback for non-Unix platforms. Runtime-level stderr output such as panics
// is not captured the way Dup2 captures it on Unix.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
