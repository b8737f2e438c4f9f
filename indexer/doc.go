// Package indexer manages on-disk seek-index artifacts produced by external
// video indexing tools.
//
// It provides:
//   - Content-addressed cache paths derived from file sizes and names
//   - Reuse / repair / rebuild decisions per batch of source files
//   - Blocking invocation of the external indexer binary with captured output
//   - Structured errors for missing files, failed runs and corrupted indexes
//
// The cache is synchronous by design: every call re-stats the filesystem and
// each logical unit is processed in sequence. Callers wanting parallelism
// drive multiple calls themselves.
package indexer
