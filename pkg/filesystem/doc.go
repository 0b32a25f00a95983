// Package filesystem provides filesystem implementations for pagesmith.
//
// NewOS is used for real builds and writes output files atomically.
// NewAferoFS and NewMemory back tests and callers that render without
// touching the disk.
package filesystem
