// Package render displays image posts. The default ImageRenderer decodes
// PNG, JPEG or GIF files and draws them as ASCII art onto any io.Writer.
package render
