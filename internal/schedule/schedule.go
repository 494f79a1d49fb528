package schedule

import (
	"container/heap"
	"context"
	"time"

	"github.com/adhocore/gronx"
)

const maxSleepCap = 60 * time.Second

// Scheduler manages timed warm triggers using a min-heap.
// It runs a background goroutine that sleeps until the next event's
// trigger time, then calls the onTrigger callback with the event name.
type Scheduler struct {
	addChan    chan WarmEvent
	removeChan chan removeReq
	listChan   chan chan []WarmEvent
	ctx        context.Context
}

type removeReq struct {
	name  string
	reply chan bool
}

// New creates and starts a new Scheduler.
// The onTrigger callback is invoked when a scheduled event fires.
// The scheduler goroutine exits when ctx is cancelled.
func New(ctx context.Context, onTrigger func(string)) *Scheduler {
	s := &Scheduler{
		addChan:    make(chan WarmEvent, 64),
		removeChan: make(chan removeReq),
		listChan:   make(chan chan []WarmEvent),
		ctx:        ctx,
	}
	go s.run(onTrigger)
	return s
}

// Add enqueues a new warm event.
func (s *Scheduler) Add(event WarmEvent) {
	select {
	case s.addChan <- event:
	case <-s.ctx.Done():
	}
}

// Remove cancels scheduled events by name. It reports whether any
// pending event carried that name at the moment the scheduler
// goroutine handled the request.
func (s *Scheduler) Remove(name string) bool {
	req := removeReq{name: name, reply: make(chan bool, 1)}
	select {
	case s.removeChan <- req:
		select {
		case removed := <-req.reply:
			return removed
		case <-s.ctx.Done():
			return false
		}
	case <-s.ctx.Done():
		return false
	}
}

// List returns a snapshot of the pending events, unordered.
func (s *Scheduler) List() []WarmEvent {
	req := make(chan []WarmEvent, 1)
	select {
	case s.listChan <- req:
		return <-req
	case <-s.ctx.Done():
		return nil
	}
}

// run is the core scheduler goroutine implementing the active-object
// pattern. It maintains a min-heap of events and sleeps with a 60s
// max-sleep-cap. For recurring events (CronExpr != ""), after firing it
// computes the next occurrence and re-adds it to the heap automatically.
func (s *Scheduler) run(onTrigger func(string)) {
	h := &warmHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			// No events — block indefinitely on channels
			return nil
		}
		next := (*h)[0].TriggerAt
		dur := time.Until(next)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event := <-s.addChan:
			heapPush(h, event)
			timerCh = resetTimer()

		case req := <-s.removeChan:
			req.reply <- heapRemoveByName(h, req.name)
			timerCh = resetTimer()

		case req := <-s.listChan:
			events := make([]WarmEvent, h.Len())
			copy(events, *h)
			req <- events

		case <-timerCh:
			// Fire all events whose time has arrived
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].TriggerAt.After(now) {
				event := heapPop(h)
				onTrigger(event.Name)
				if event.CronExpr != "" {
					next, err := NextOccurrence(event.CronExpr, time.Now())
					if err == nil {
						heapPush(h, WarmEvent{
							Name:      event.Name,
							TriggerAt: next,
							CronExpr:  event.CronExpr,
						})
					}
				}
			}
			timerCh = resetTimer()
		}
	}
}

// NextOccurrence returns the next time the cron expression fires strictly
// after start.
func NextOccurrence(expr string, start time.Time) (time.Time, error) {
	return gronx.NextTickAfter(expr, start, false)
}

// Valid reports whether expr is a parseable cron expression.
func Valid(expr string) bool {
	return gronx.New().IsValid(expr)
}
