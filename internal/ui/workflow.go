package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TaskStatus is the state of one workflow line.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
)

// Task is a single line of a Workflow.
type Task struct {
	Name    string
	Status  TaskStatus
	Message string
	Details string
}

// Workflow renders a list of tasks with a spinner on the running one. Without
// animation (Start not called, or a non-terminal writer) only the final state
// is printed by Stop.
type Workflow struct {
	mu         sync.Mutex
	writer     io.Writer
	tasks      []*Task
	frame      int
	running    bool
	animate    bool
	stop       chan struct{}
	done       chan struct{}
	lastRender string
}

// NewWorkflow creates a workflow writing to w. animate enables the spinner
// and in-place redraws.
func NewWorkflow(w io.Writer, animate bool) *Workflow {
	return &Workflow{writer: w, animate: animate}
}

// AddTask appends a pending task and returns its index.
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.tasks = append(wf.tasks, &Task{Name: name})
	return len(wf.tasks) - 1
}

func (wf *Workflow) set(idx int, fn func(*Task)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if idx >= 0 && idx < len(wf.tasks) {
		fn(wf.tasks[idx])
	}
}

// StartTask marks a task as running.
func (wf *Workflow) StartTask(idx int, message string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskRunning, message })
}

// CompleteTask marks a task as done.
func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.set(idx, func(t *Task) { t.Status, t.Details = TaskDone, details })
}

// FailTask marks a task as failed.
func (wf *Workflow) FailTask(idx int, msg string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskFailed, msg })
}

// Start begins the spinner animation when enabled.
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running || !wf.animate {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	wf.stop = make(chan struct{})
	wf.done = make(chan struct{})
	wf.mu.Unlock()

	go func() {
		defer close(wf.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-wf.stop:
				return
			case <-ticker.C:
				wf.mu.Lock()
				wf.frame = (wf.frame + 1) % len(spinnerFrames)
				wf.draw(false)
				wf.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and prints the final state of every task.
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	running := wf.running
	wf.running = false
	wf.mu.Unlock()
	if running {
		close(wf.stop)
		<-wf.done
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.draw(true)
}

// draw must be called with wf.mu held.
func (wf *Workflow) draw(final bool) {
	var b strings.Builder
	if wf.lastRender != "" {
		for range strings.Count(wf.lastRender, "\n") + 1 {
			b.WriteString("\033[A\033[K")
		}
	}
	for _, t := range wf.tasks {
		b.WriteString(wf.line(t, final))
		b.WriteString("\n")
	}
	out := b.String()
	if !final {
		wf.lastRender = strings.TrimSuffix(out, "\n")
	}
	fmt.Fprint(wf.writer, out)
}

func (wf *Workflow) line(t *Task, final bool) string {
	switch t.Status {
	case TaskRunning:
		if final {
			return Muted.Render("○") + " " + StepPending.Render(t.Name)
		}
		s := Secondary.Render(spinnerFrames[wf.frame]) + " " + StepRunning.Render(t.Name)
		if t.Message != "" {
			s += " " + Secondary.Render(t.Message)
		}
		return s
	case TaskDone:
		s := CheckMark + " " + StepComplete.Render(t.Name)
		if t.Details != "" {
			s += " " + Dim.Render("→ "+t.Details)
		}
		return s
	case TaskFailed:
		s := CrossMark + " " + StepFailed.Render(t.Name)
		if t.Message != "" {
			s += " " + Error.Render("→ "+t.Message)
		}
		return s
	default:
		return Muted.Render("○") + " " + StepPending.Render(t.Name)
	}
}
