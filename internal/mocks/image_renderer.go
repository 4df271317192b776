package mocks

import (
	"context"
	"io"
)

// MockImageRenderer implements render.ImageRenderer for testing
type MockImageRenderer struct {
	RenderFn func(ctx context.Context, path string, w io.Writer) error

	// RenderedPaths records the path of every Render call
	RenderedPaths []string
}

// Render implements the render.ImageRenderer interface
func (m *MockImageRenderer) Render(ctx context.Context, path string, w io.Writer) error {
	m.RenderedPaths = append(m.RenderedPaths, path)
	if m.RenderFn != nil {
		return m.RenderFn(ctx, path, w)
	}
	_, err := io.WriteString(w, "["+path+"]\n")
	return err
}
