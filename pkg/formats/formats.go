// Package formats provides encoders and decoders for the image files the
// renderer produces.
package formats

// Note: PPM (binary P6) is implemented in ppm.go
