// Package pipeline runs one conversion: parse the scanner report, convert
// each record, aggregate the full feature set, optionally compare against a
// baseline, and only then write outputs.
//
// Every failure aborts the run. Outputs are staged and moved into place at
// the end, so a failed run leaves no annotation file behind.
package pipeline
