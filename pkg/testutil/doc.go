// Package testutil provides helpers for testing pagesmith components.
//
// Key components:
//   - NewMemoryFS / ReadFile: seeded in-memory filesystems for pipeline,
//     template and config tests
//   - CreateFile: real files under t.TempDir() for CLI tests
//   - Isolate: keeps user settings, PAGESMITH_* variables and the log file
//     out of a test
//   - Tree: builds a configuration tree from Go literals
//
// Usage guidelines:
//   - Prefer the memory filesystem; only the CLI and OS filesystem tests
//     touch disk
//   - Define test data inline, not in external fixture files
package testutil
