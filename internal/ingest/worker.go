package ingest

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/amos-lsl/sentry/internal/model"
)

// BatchWorker buffers incoming events and flushes them in batches.
type BatchWorker interface {
	Enqueue(event model.Event)
	Shutdown()
}

type batchWorker struct {
	inserter      Inserter
	eventQueue    chan model.Event
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
}

// NewBatchWorker starts a background worker that flushes either when the
// batch fills up or on the flush interval, whichever comes first.
func NewBatchWorker(inserter Inserter, bufferSize, batchSize int, interval time.Duration) *batchWorker {
	worker := &batchWorker{
		inserter:      inserter,
		eventQueue:    make(chan model.Event, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue hands an event to the worker. Blocks when the buffer is full.
func (w *batchWorker) Enqueue(event model.Event) {
	w.eventQueue <- event
}

// Shutdown closes the queue and blocks until buffered events are flushed.
func (w *batchWorker) Shutdown() {
	close(w.eventQueue)
	w.wg.Wait()
	log.Println("ingest worker stopped")
}

func (w *batchWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.Event
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.eventQueue:
			if !ok {
				// Queue closed, flush whatever is left and exit.
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}

			batch = append(batch, event)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *batchWorker) flush(events []model.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.inserter.InsertBatch(ctx, events); err != nil {
		log.Printf("[ERROR] batch insert failed: %v", err)
	}
}
