// Package source adapts index artifacts into frame sources: sequence
// abstractions over decoded video frames.
//
// The actual decoding is delegated to an OpenFunc supplied by the tool
// package; this package owns the in-core sequencing logic, splicing
// multiple opened sequences end-to-end and recording the colorimetry
// normalization applied once to the spliced result.
package source
