package maze

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

type openEntry struct {
	point Point
	cost  int
	seq   uint64
}

// openSet is the A* frontier: a min-heap on estimated cost paired with a
// membership set, so a point is never queued twice while it is waiting.
// Equal costs come out in insertion order.
type openSet struct {
	queue   *heap.Heap[openEntry]
	members mapset.Set[Point]
	seq     uint64
}

func newOpenSet() *openSet {
	return &openSet{
		queue: heap.New(func(a, b openEntry) bool {
			if a.cost != b.cost {
				return a.cost < b.cost
			}
			return a.seq < b.seq
		}),
		members: mapset.New[Point](),
	}
}

// push queues p unless it is already a member. It reports whether p was added.
func (s *openSet) push(p Point, cost int) bool {
	if s.members.Has(p) {
		return false
	}
	s.queue.Push(openEntry{point: p, cost: cost, seq: s.seq})
	s.seq++
	s.members.Put(p)
	return true
}

func (s *openSet) pop() (Point, int, bool) {
	e, ok := s.queue.Pop()
	if !ok {
		return Point{}, 0, false
	}
	s.members.Remove(e.point)
	return e.point, e.cost, true
}

func (s *openSet) has(p Point) bool {
	return s.members.Has(p)
}

func (s *openSet) len() int {
	return s.queue.Size()
}
