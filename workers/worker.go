//go:generate go run go.uber.org/mock/mockgen -source=worker.go -destination=../mocks/mock_worker.go -package=mocks

// Package workers supervises the server's long-lived background loops.
package workers

import (
	"context"
	"reflect"
)

// Worker doesn't protect itself: it runs until its context is canceled or
// it fails, and relies on the Supervisor for recovery.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerName uses reflection to retrieve the type name of the worker for
// logging and supervision, avoiding manual naming in the Worker interface.
func WorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
