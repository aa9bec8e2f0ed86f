// Package platform wraps the filesystem operations used while generating a
// module. Each call acquires and releases its own file handle, and failures
// are tagged with ErrDirectoryCreateFailed or ErrWriteFailed so callers can
// classify them with errors.Is.
package platform
