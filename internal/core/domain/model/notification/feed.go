package notification

import "slices"

// Feed is an ordered, immutable list of notifications, newest first as delivered
// by storage.
type Feed struct {
	items []Notification
}

// NewFeed copies items into a feed. Nil entries are skipped.
func NewFeed(items ...*Notification) Feed {
	f := Feed{items: make([]Notification, 0, len(items))}
	for _, n := range items {
		if n != nil {
			f.items = append(f.items, *n)
		}
	}
	return f
}

// Items returns copies of the notifications in feed order.
func (f Feed) Items() []*Notification {
	result := make([]*Notification, 0, len(f.items))
	for i := range f.items {
		n := f.items[i]
		result = append(result, &n)
	}
	return result
}

func (f Feed) Len() int {
	return len(f.items)
}

// UnreadCount counts notifications not yet read.
func (f Feed) UnreadCount() int {
	count := 0
	for i := range f.items {
		if !f.items[i].isRead {
			count++
		}
	}
	return count
}

// Find returns the notification with the same id as n, if present.
func (f Feed) Find(n *Notification) (*Notification, bool) {
	idx := f.indexOf(n)
	if idx < 0 {
		return nil, false
	}
	found := f.items[idx]
	return &found, true
}

// Replace returns a new feed where the element sharing n's id is swapped for n.
// Position and length are kept. An unknown id returns an equal feed and false.
func (f Feed) Replace(n *Notification) (Feed, bool) {
	idx := f.indexOf(n)
	if idx < 0 {
		return f, false
	}
	items := slices.Clone(f.items)
	items[idx] = *n
	return Feed{items: items}, true
}

func (f Feed) indexOf(n *Notification) int {
	if n == nil || n.id.IsZero() {
		return -1
	}
	return slices.IndexFunc(f.items, func(item Notification) bool {
		return item.id.IsEqual(n.id)
	})
}
