// Package domain contains the core business entities of the social network:
// users, posts with their Text, Image and Sale content variants, and
// notifications. It is independent of storage, transport and logging.
package domain
