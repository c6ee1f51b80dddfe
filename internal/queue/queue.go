package queue

import (
	"github.com/ytget/imgqueue/internal/model"
)

// Queue is the ordered list of pending items. Position in the slice is the
// display order, the slideshow order and the output index. Queue is not
// safe for concurrent use; Controller guards it.
type Queue struct {
	items []*model.ImageItem
}

// Len returns the number of queued items
func (q *Queue) Len() int {
	return len(q.items)
}

// Append adds items at the end in the given order
func (q *Queue) Append(items ...*model.ImageItem) {
	q.items = append(q.items, items...)
}

// At returns the item at index, or nil when index is out of range
func (q *Queue) At(index int) *model.ImageItem {
	if index < 0 || index >= len(q.items) {
		return nil
	}
	return q.items[index]
}

// IndexOf returns the current position of the item with id, or -1
func (q *Queue) IndexOf(id string) int {
	for i, item := range q.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// RemoveAt splices out the item at index; later items shift down by one
func (q *Queue) RemoveAt(index int) (*model.ImageItem, bool) {
	if index < 0 || index >= len(q.items) {
		return nil, false
	}
	removed := q.items[index]
	last := len(q.items) - 1
	copy(q.items[index:], q.items[index+1:])
	q.items[last] = nil // release the vacated slot's image bytes
	q.items = q.items[:last]
	return removed, true
}

// Items returns a snapshot of the queue order
func (q *Queue) Items() []*model.ImageItem {
	out := make([]*model.ImageItem, len(q.items))
	copy(out, q.items)
	return out
}
