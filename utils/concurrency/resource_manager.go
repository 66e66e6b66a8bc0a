// Package concurrency implements a simple channel based resource manager for concurrent operations.
package concurrency

import (
	"fmt"
	"sync"
)

// ResourceManager is a struct storing a channel of some given resource
// (e.g. a scratch buffer owned by a worker) meant to be used concurrently
// and a channel for errors.
type ResourceManager[T any] struct {
	sync.WaitGroup
	Resources chan T
	Errors    chan error
}

// NewResourceManager instantiates a new [ResourceManager].
// The number of resources bounds the number of concurrently running tasks.
func NewResourceManager[T any](resources []T) *ResourceManager[T] {

	if len(resources) == 0 {
		panic(fmt.Errorf("cannot NewResourceManager: at least one resource is required"))
	}

	Resources := make(chan T, len(resources))
	for i := range resources {
		Resources <- resources[i]
	}
	return &ResourceManager[T]{
		Resources: Resources,
		Errors:    make(chan error, len(resources)),
	}
}

// Task is an abstract template for a function taking as input
// a resource of any kind that can be used concurrently.
type Task[T any] func(resource T) (err error)

// Run runs a [Task] concurrently.
// If the internal error channel is not empty, does nothing.
// Adds any error returned by [Task] to the internal error channel.
func (r *ResourceManager[T]) Run(f Task[T]) {
	r.Add(1)
	go func() {
		defer r.Done()
		if len(r.Errors) != 0 {
			return
		}
		resource := <-r.Resources
		defer func() { r.Resources <- resource }()
		if err := f(resource); err != nil {
			select {
			case r.Errors <- err:
			default:
			}
		}
	}()
}

// Wait waits until all concurrent [Task] have finished and returns
// the first encountered error, if any.
// The [ResourceManager] can be reused after Wait returns.
func (r *ResourceManager[T]) Wait() (err error) {
	r.WaitGroup.Wait()
	select {
	case err = <-r.Errors:
		// Drains the remaining errors so that the next batch starts clean.
		for len(r.Errors) != 0 {
			<-r.Errors
		}
	default:
	}
	return
}

// ForEach runs f(resource, i) for i in [0, n) and waits for all of them.
// It acts as a barrier: when it returns, every task has completed.
func (r *ResourceManager[T]) ForEach(n int, f func(resource T, i int) (err error)) (err error) {
	for i := 0; i < n; i++ {
		r.Run(func(resource T) error {
			return f(resource, i)
		})
	}
	return r.Wait()
}
