package track

import "github.com/gammazero/deque"

// RecycleQueue holds the dormant rows of the track in spawn order.
// Rows leave from the front when spawned and come back at the back when
// they scroll out of view, so together with the live window it always
// accounts for every row of the track.
type RecycleQueue struct {
	rows deque.Deque[Row]
}

// PushBack appends a recycled row to the tail.
func (q *RecycleQueue) PushBack(r Row) {
	q.rows.PushBack(r)
}

// PopFront removes the next row to spawn. It reports false when the queue
// is empty.
func (q *RecycleQueue) PopFront() (Row, bool) {
	if q.rows.Len() == 0 {
		return Row{}, false
	}
	return q.rows.PopFront(), true
}

// Front returns the next row to spawn without removing it.
func (q *RecycleQueue) Front() (Row, bool) {
	if q.rows.Len() == 0 {
		return Row{}, false
	}
	return q.rows.Front(), true
}

// Len returns the number of dormant rows.
func (q *RecycleQueue) Len() int {
	return q.rows.Len()
}

// Clear drops every row.
func (q *RecycleQueue) Clear() {
	q.rows.Clear()
}
