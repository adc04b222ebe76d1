package mockengine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amos-lsl/sentry/internal/engine"
)

type Engine struct {
	mock.Mock
}

// Interface compliance check
var _ engine.Engine = &Engine{}

func (m *Engine) Query(ctx context.Context, p engine.Params) (engine.Result, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(engine.Result), args.Error(1)
}
