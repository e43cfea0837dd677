package viewer

import (
	"errors"
	"fmt"
)

// Task is a deferred operation run by the frame loop.
type Task struct {
	Name string
	Run  func() error
}

// TaskQueue holds operations requested during event handling until the
// frame loop reaches a safe point. Model reloads go through it so the mesh
// is never swapped while a frame is being drawn. It is owned by the frame
// loop and not safe for concurrent use.
type TaskQueue struct {
	tasks []Task
}

// Push schedules a task for the next Drain.
func (q *TaskQueue) Push(name string, run func() error) {
	q.tasks = append(q.tasks, Task{Name: name, Run: run})
}

// Len returns the number of pending tasks.
func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

// Drain runs every pending task in FIFO order. Tasks pushed while draining
// wait for the next call. Failures do not stop the remaining tasks and are
// returned joined.
func (q *TaskQueue) Drain() error {
	pending := q.tasks
	q.tasks = nil

	var errs []error
	for _, t := range pending {
		if err := t.Run(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}
