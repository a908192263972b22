package repository

import (
	"context"
	"fmt"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
)

// MessagePublisher is the slice of pkg/kafka.Producer the sink needs.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// SnapshotPublisher forwards each committed view-model to a topic, keyed by
// symbol so one symbol's snapshots stay ordered on one partition.
type SnapshotPublisher struct {
	pub   MessagePublisher
	topic string
}

func NewSnapshotPublisher(pub MessagePublisher, topic string) *SnapshotPublisher {
	return &SnapshotPublisher{pub: pub, topic: topic}
}

var _ domrepo.Presenter = (*SnapshotPublisher)(nil)

func (p *SnapshotPublisher) Present(ctx context.Context, vm *models.ViewModel) error {
	if err := p.pub.Publish(ctx, p.topic, []byte(vm.Symbol), vm); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", vm.Symbol, err)
	}
	return nil
}
