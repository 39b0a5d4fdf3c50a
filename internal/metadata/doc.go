// Package metadata reads IAMF test vector user metadata and expands it into
// the concrete decode-and-compare cases of the conformance harness.
package metadata
