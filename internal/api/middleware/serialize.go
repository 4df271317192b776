package middleware

import (
	"net/http"
	"sync"
)

// Serialize returns middleware that lets one request at a time through.
//
// A follow, a publish and the notifications they fan out touch several
// stores; running requests one after another keeps each operation atomic
// with respect to the others.
func Serialize() func(http.Handler) http.Handler {
	var mu sync.Mutex
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
