package sheets

import (
	"context"

	"organizador/internal/export"
)

// Publisher pushes the rendered ledger sheets to an external destination.
type Publisher interface {
	Publish(ctx context.Context, blocks []export.Block) error
}
