// Package batch analyses several inputs concurrently.
//
// Each input is parsed and summarized independently; results are returned
// in input order regardless of completion order. An optional Saver persists
// every analysis that produced numbers.
package batch
