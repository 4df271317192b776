// Package events carries in-process notifications about what happens in the
// network: likes, comments, new posts and direct messages.
//
// Services emit an Event through an EventEmitter without knowing who consumes
// it. The notification handler in package notify turns these events into
// entries in a user's notification list.
package events
