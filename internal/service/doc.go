// Package service implements the social network's use cases on top of the
// domain entities and the store interfaces.
//
// A SocialNetwork is the registry of users. It is created once by the entry
// point and handed to every caller; it gives out the UserService and
// PostService bound to its stores. Services take *domain.User and
// *domain.Post handles but always re-read mutable user state from the store,
// so a stale handle never bypasses a check.
//
// Notifications are not written directly: services emit events, and the
// handler from package notify appends them to the recipient's list.
package service
