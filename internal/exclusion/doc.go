// Package exclusion holds the deny-list of test cases that are skipped
// instead of decoded. Rules are configuration: they are built once per run
// and passed to the evaluator explicitly.
package exclusion
