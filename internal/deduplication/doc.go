// Package deduplication collapses content-equal records before clustering.
//
// # Overview
//
// By default every record is its own node, identified by its position in the
// input: two identical lines are two nodes that may land in the same cluster
// or in different ones. The deduplicating mode instead keys records by
// content. Each distinct text is kept once, at its first position, and later
// copies are recorded as duplicates of that first occurrence.
//
// The two modes are never mixed within a run. Callers choose one before
// clustering starts:
//
//	result := deduplication.Collapse(records)
//	clusters, err := engine.Cluster(ctx, result.Unique)
//
// # Result
//
// Result.Unique holds the surviving records in input order and
// Result.Positions maps each of them back to its original position.
// Result.Duplicates maps every dropped position to the position of the copy
// that was kept. Stats summarize the collapse and Validate checks that the
// three views agree.
package deduplication
