// Package inbox keeps a user's notification feed in memory for a long-lived client
// session. Readers always see a complete snapshot; MarkRead swaps in a new snapshot
// with the updated notification in its original position.
package inbox

import (
	"context"
	"sync/atomic"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
)

// Marker persists the read flag and returns the stored notification.
type Marker interface {
	MarkRead(ctx context.Context, notificationID kernel.ID) (*notification.Notification, error)
}

type Inbox struct {
	feed   atomic.Pointer[notification.Feed]
	marker Marker
}

func New(marker Marker) *Inbox {
	i := &Inbox{marker: marker}
	empty := notification.NewFeed()
	i.feed.Store(&empty)
	return i
}

// Load replaces the whole feed, typically after polling the server.
func (i *Inbox) Load(items ...*notification.Notification) {
	feed := notification.NewFeed(items...)
	i.feed.Store(&feed)
}

func (i *Inbox) Snapshot() notification.Feed {
	return *i.feed.Load()
}

func (i *Inbox) UnreadCount() int {
	return i.feed.Load().UnreadCount()
}

// MarkRead asks the marker to mark the notification and then folds the returned
// record into the feed. A notification that left the feed in the meantime is not
// re-added. Marker errors leave the feed untouched.
func (i *Inbox) MarkRead(ctx context.Context, notificationID kernel.ID) (*notification.Notification, error) {
	updated, err := i.marker.MarkRead(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	for {
		current := i.feed.Load()
		next, ok := current.Replace(updated)
		if !ok {
			return updated, nil
		}
		if i.feed.CompareAndSwap(current, &next) {
			return updated, nil
		}
	}
}

type markReadHandler interface {
	Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error)
}

// CommandMarker marks notifications in-process on behalf of one actor.
type CommandMarker struct {
	handler markReadHandler
	actor   *identity.Actor
}

func NewCommandMarker(handler markReadHandler, actor *identity.Actor) CommandMarker {
	return CommandMarker{handler: handler, actor: actor}
}

func (m CommandMarker) MarkRead(ctx context.Context, notificationID kernel.ID) (*notification.Notification, error) {
	cmd, err := commands.NewMarkNotificationReadCommand(m.actor, notificationID)
	if err != nil {
		return nil, err
	}
	return m.handler.Handle(ctx, cmd)
}
