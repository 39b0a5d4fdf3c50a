// ABOUTME: Decode runner package for the external IAMF decoder
// ABOUTME: Builds iamfdec arguments and classifies its exit status
// Package decoder runs the decoder under test as an opaque subprocess.
//
// The argument contract is:
//
//	iamfdec -i0 -mp <mixId> -s<layoutToken> -o3 <outputFile> \
//	        -d <bitDepth> -r <sampleRate> -disable_limiter <inputFile>
//
// Exit code 0 is success; anything else, including failure to start the
// binary, is reported as an unsuccessful Outcome rather than an error.
package decoder
