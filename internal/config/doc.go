// Package config loads the harness configuration.
//
// A YAML file can set every flag of the iamf-conformance command plus the
// lossy and lossless PSNR thresholds and the exclusion rules:
//
//	test_file_directory: /vectors
//	working_directory: /tmp/iamf
//	jobs: 4
//	thresholds:
//	  lossy: 30
//	  lossless: 80
//	exclusions:
//	  - file_name_prefix: test_000710
//	    mix_presentation_id: 42
//	    layout_index: 0
//	    reason: Mix surpasses base-enhanced profile limits
//
// Flags given on the command line override the file.
package config
