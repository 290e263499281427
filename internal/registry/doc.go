// Package registry issues and persists stable identifiers keyed by
// (category, domain key) pairs.
//
// A record is created on the first GetOrCreate for a new pair and is never
// mutated or deleted afterwards; every later lookup, including after process
// restarts, returns the same identifier value. The check-then-insert runs
// under a per-registry mutex so concurrent callers for the same key never
// persist divergent identifiers. Reads of existing records go through the
// same store, which gives read consistency on its own.
//
// Stamps are a first-write-wins side table keyed the same way: conversion
// pipelines use them to pin an auxiliary value (such as a study datetime)
// to a key the first time it is seen.
package registry
