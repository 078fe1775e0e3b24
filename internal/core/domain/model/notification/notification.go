package notification

import (
	"errors"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

type Notification struct {
	id             kernel.ID
	recipientID    kernel.ID
	content        string
	isRead         bool
	relatedOrderID *kernel.ID
	createdAt      time.Time

	isConstructed bool
}

// NewNotification creates an unread, unpersisted notification for recipientID.
// relatedOrderID may be nil.
func NewNotification(
	recipientID kernel.ID,
	content string,
	relatedOrderID *kernel.ID,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setRecipient(recipientID),
		n.setContent(content),
		n.setRelatedOrder(relatedOrderID),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification rebuilds a persisted notification.
func RestoreNotification(
	id, recipientID kernel.ID,
	content string,
	isRead bool,
	relatedOrderID *kernel.ID,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(recipientID, content, relatedOrderID, createdAt)
	if err != nil {
		return nil, err
	}
	if err := n.Identify(id); err != nil {
		return nil, err
	}
	n.isRead = isRead
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// Identify records the identity storage assigned to the notification.
func (n *Notification) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !n.id.IsZero() && !n.id.IsEqual(id) {
		return errs.NewValueIsInvalidError("notification is already identified as " + n.id.String())
	}
	n.id = id
	return nil
}

func (n *Notification) ID() kernel.ID {
	return n.id
}

func (n *Notification) RecipientID() kernel.ID {
	return n.recipientID
}

func (n *Notification) Content() string {
	return n.content
}

func (n *Notification) IsRead() bool {
	return n.isRead
}

// RelatedOrderID returns the order the notification is about, if any.
func (n *Notification) RelatedOrderID() (kernel.ID, bool) {
	if n.relatedOrderID == nil {
		return kernel.ID{}, false
	}
	return *n.relatedOrderID, true
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsAddressedTo reports whether userID is the recipient.
func (n *Notification) IsAddressedTo(userID kernel.ID) bool {
	return !userID.IsZero() && n.recipientID.IsEqual(userID)
}

// MarkRead flips the notification to read. Reading an already read
// notification changes nothing.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setRecipient(recipientID kernel.ID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	n.recipientID = recipientID
	return nil
}

func (n *Notification) setContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	n.content = content
	return nil
}

func (n *Notification) setRelatedOrder(orderID *kernel.ID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	n.relatedOrderID = &id
	return nil
}
