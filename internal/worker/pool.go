// Package worker renders batches of textures in parallel.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

// Task is one texture to render.
type Task struct {
	Name      string
	Generator texture.Generator
	Width     int
	Height    int
}

// Result is the outcome of a Task. Map is nil when a Sink consumed it.
type Result struct {
	Task    Task
	Map     *texture.Map
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// SinkFunc consumes a rendered map on the worker goroutine, for example by
// writing it to disk.
type SinkFunc func(ctx context.Context, task Task, m *texture.Map) error

// Config configures the worker pool.
type Config struct {
	Workers    int
	OnProgress ProgressFunc
	Sink       SinkFunc
}

// Pool renders tasks on a fixed number of goroutines.
type Pool struct {
	workers    int
	onProgress ProgressFunc
	sink       SinkFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		onProgress: cfg.OnProgress,
		sink:       cfg.Sink,
	}
}

// Run executes all tasks and returns one result per task, in completion
// order. It blocks until every task has been rendered or cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))
	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, 0, len(tasks))
	failed := 0
	for result := range resultCh {
		results = append(results, result)
		if result.Err != nil {
			failed++
		}
		if p.onProgress != nil {
			p.onProgress(len(results), len(tasks), failed)
		}
	}
	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- Result{Task: task, Err: err}
			continue
		}

		start := time.Now()
		m, err := task.Generator.Generate(task.Width, task.Height)
		if err != nil {
			err = fmt.Errorf("generate %s: %w", task.Name, err)
		} else if p.sink != nil {
			if err = p.sink(ctx, task, m); err != nil {
				err = fmt.Errorf("store %s: %w", task.Name, err)
			}
			m = nil
		}

		results <- Result{
			Task:    task,
			Map:     m,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
