package websocket

import (
	"context"
	"fmt"

	"github.com/centrifugal/centrifuge"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/domain"
)

// Publisher pushes every evaluated board to BoardChannel.
type Publisher struct {
	node      *centrifuge.Node
	wsMetrics *metrics.WebSocketMetrics
}

var _ domain.BoardPublisher = (*Publisher)(nil)

func NewPublisher(node *centrifuge.Node, wsMetrics *metrics.WebSocketMetrics) *Publisher {
	return &Publisher{node: node, wsMetrics: wsMetrics}
}

func (p *Publisher) PublishBoard(ctx context.Context, board domain.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeBoard(board)
	if err != nil {
		p.recordError()
		return err
	}

	if _, err := p.node.Publish(BoardChannel, data); err != nil {
		p.recordError()
		return fmt.Errorf("publish to channel %s: %w", BoardChannel, err)
	}

	if p.wsMetrics != nil {
		p.wsMetrics.MessagesPublished.Inc()
	}
	return nil
}

func (p *Publisher) recordError() {
	if p.wsMetrics != nil {
		p.wsMetrics.PublishErrors.Inc()
	}
}
