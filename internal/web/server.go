package web

import "context"

// Server is a preview host the run loop can start alongside the face.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

var _ Server = (*HTTPServer)(nil)
