// Package notify delivers network events to users' notification lists.
package notify
