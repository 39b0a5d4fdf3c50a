// Package harness runs the IAMF decoder conformance tests.
//
// For each descriptor file the harness expands the test matrix, then for each
// case consults the exclusion list, runs the decoder, compares the generated
// rendering with the golden file and classifies the PSNR against the lossy or
// lossless threshold. Setup errors (unparseable descriptors, descriptors
// without exactly one codec config) abort the run; everything that goes wrong
// inside a single case is recorded as that case's result.
//
// Execution is sequential by default. A hung decoder hangs the run; cancel
// the context to kill it.
package harness
