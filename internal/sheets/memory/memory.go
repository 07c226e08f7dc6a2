// Package memory is an in-process sheet publisher used in tests and as a
// dry-run destination.
package memory

import (
	"context"
	"sync"

	"organizador/internal/export"
)

type Publisher struct {
	mu     sync.Mutex
	blocks []export.Block
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(_ context.Context, blocks []export.Block) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blocks = append([]export.Block(nil), blocks...)
	return nil
}

// Published returns the blocks from the most recent publish.
func (p *Publisher) Published() []export.Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.blocks
}
