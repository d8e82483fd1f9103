package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Camera maps a discrete pixel to the primary ray that passes through it
type Camera interface {
	GetRay(row, col, height, width int) Ray
}
