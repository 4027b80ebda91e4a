// Package sink provides output destinations for generated files.
//
// FilesystemSink writes under a root directory, MemorySink keeps files in memory
// for tests, and CheckSink compares against a root directory without writing.
package sink
