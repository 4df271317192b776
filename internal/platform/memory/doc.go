// Package memory implements the store interfaces with in-process maps
// guarded by read/write mutexes. Nothing is persisted; state lives as long
// as the process.
package memory
