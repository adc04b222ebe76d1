package mockworker

import (
	"github.com/stretchr/testify/mock"

	"github.com/amos-lsl/sentry/internal/ingest"
	"github.com/amos-lsl/sentry/internal/model"
)

type Worker struct {
	mock.Mock
}

// Interface compliance check
var _ ingest.BatchWorker = &Worker{}

func (m *Worker) Enqueue(event model.Event) {
	m.Called(event)
}

func (m *Worker) Shutdown() {
	m.Called()
}
