// Package pipeline drives one generation run:
//
//	read -> classify -> merge -> emit commands -> emit resources -> finalize -> flush
//
// Every file is rendered into memory before anything is written, so a failing
// run leaves the output directory untouched. A Manifest value accumulates the
// generated units for the finalization step; nothing is shared between runs.
package pipeline
