//go:build !linux

package system

import "context"

// WatchKeys is a no-op off Linux.
func WatchKeys(ctx context.Context, l logger, handlers KeyHandlers) {
	if l != nil {
		l.Infof("input", "key watching is only supported on linux")
	}
}
