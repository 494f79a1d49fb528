package schedule

import "container/heap"

// warmHeap keeps pending WarmEvents ordered so the soonest TriggerAt
// sits at index 0. It satisfies container/heap.Interface; callers go
// through the heapPush/heapPop/heapRemoveByName helpers rather than
// the raw methods.
type warmHeap []WarmEvent

func (h warmHeap) Len() int           { return len(h) }
func (h warmHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h warmHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *warmHeap) Push(x any) {
	*h = append(*h, x.(WarmEvent))
}

func (h *warmHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush inserts e, keeping the soonest event at the top.
func heapPush(h *warmHeap, e WarmEvent) {
	heap.Push(h, e)
}

// heapPop takes the event that is due next. The heap must be non-empty.
func heapPop(h *warmHeap) WarmEvent {
	return heap.Pop(h).(WarmEvent)
}

// heapRemoveByName removes every WarmEvent with the given name.
// Returns true if at least one event was removed.
func heapRemoveByName(h *warmHeap, name string) bool {
	removed := false
	for i := 0; i < h.Len(); {
		if (*h)[i].Name == name {
			heap.Remove(h, i)
			removed = true
			continue
		}
		i++
	}
	return removed
}
