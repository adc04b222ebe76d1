package mockinserter

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amos-lsl/sentry/internal/ingest"
	"github.com/amos-lsl/sentry/internal/model"
)

type Inserter struct {
	mock.Mock
}

// Interface compliance check
var _ ingest.Inserter = &Inserter{}

func (m *Inserter) InsertBatch(ctx context.Context, events []model.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
