// Package notification models in-app notices sent to staff about their orders.
//
// A Notification starts unread and can only move to read; MarkRead is idempotent.
// Feed is an immutable, ordered list of notifications. Replace returns a new Feed
// with one element swapped by id, so a reader holding the old Feed never observes a
// partial update.
package notification
