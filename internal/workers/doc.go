// Package workers calculates worker counts for caller-side parallel
// indexing, based on available CPU resources. The cache itself is
// strictly sequential; parallelism is a caller decision.
package workers
