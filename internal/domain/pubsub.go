package domain

import (
	"context"
)

// BoardPublisher pushes board updates to connected clients.
type BoardPublisher interface {
	PublishBoard(ctx context.Context, board Board) error
}
