// Package pipeline runs a build: it composes the configuration once, renders
// every input template with it and writes each page to its output path.
//
// A run moves through two phases. The first composes the base configuration
// and the overrides into a single tree and prepares the output directory;
// any error here stops the run before a page is written. The second renders
// each input independently: a missing input is skipped, a failing one is
// recorded as failed, and neither affects the rest of the batch.
//
// Inputs may render in parallel (Options.Jobs). The report lists results in
// input order whatever the completion order was.
package pipeline
