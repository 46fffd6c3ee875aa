package battle

import (
	"container/heap"
	"fmt"

	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/model"
)

// TickScale is the time an actor with SPD 1 waits between turns.
const TickScale = 10000

// Interval returns the ticks between two turns of an actor with speed spd.
func Interval(spd int64) int64 {
	return max(1, TickScale/max(spd, 1))
}

type entry struct {
	actor *Actor
	tick  int64
	seq   uint64
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].tick != h[j].tick {
		return h[i].tick < h[j].tick
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Scheduler orders actor turns by next action tick.
//
// The earliest tick acts first; equal ticks go to the actor enqueued
// earlier. Faster actors get shorter intervals and so act more often.
// Ordering never depends on identity or map iteration.
type Scheduler struct {
	h    entryHeap
	byID map[event.ActorID]*entry
	seq  uint64
	now  int64
}

// NewScheduler returns an empty scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[event.ActorID]*entry)}
}

// Len returns the number of queued actors.
func (s *Scheduler) Len() int { return s.h.Len() }

// Now returns the tick of the last popped turn.
func (s *Scheduler) Now() int64 { return s.now }

// Push enqueues a for its next turn one interval from now.
// Re-pushing a queued actor moves it.
func (s *Scheduler) Push(a *Actor) {
	s.Remove(a.ID())
	s.seq++
	e := &entry{actor: a, tick: s.now + Interval(a.Speed()), seq: s.seq}
	heap.Push(&s.h, e)
	s.byID[a.ID()] = e
}

// Remove drops the actor from the queue, if queued.
func (s *Scheduler) Remove(id event.ActorID) {
	e, ok := s.byID[id]
	if !ok {
		return
	}
	heap.Remove(&s.h, e.index)
	delete(s.byID, id)
}

// Pop dequeues the next actor and advances time to its tick.
// A dead actor at the head means a death was not removed from the queue,
// which is an invariant violation.
func (s *Scheduler) Pop() (*Actor, error) {
	if s.h.Len() == 0 {
		return nil, fmt.Errorf("%w: pop from empty scheduler", model.ErrInvariant)
	}
	e := heap.Pop(&s.h).(*entry)
	delete(s.byID, e.actor.ID())
	if e.actor.IsDead() {
		return nil, fmt.Errorf("%w: dead actor %d scheduled for a turn", model.ErrInvariant, e.actor.ID())
	}
	s.now = e.tick
	return e.actor, nil
}

// Reset empties the queue and rewinds time, used at wave start.
func (s *Scheduler) Reset() {
	s.h = s.h[:0]
	clear(s.byID)
	s.now = 0
}
