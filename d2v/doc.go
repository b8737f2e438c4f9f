// Package d2v implements the indexer Tool interface for DGIndex-style
// .d2v project files.
//
// It builds the external indexer command line, parses the .d2v text header
// (recorded source paths, stream settings, frame data), rewrites recorded
// source paths in place when inputs move, and exposes parsed headers as
// frame sources.
package d2v
