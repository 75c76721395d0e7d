// Package factor implements the query layer over the search index:
// discovering which factors an entity carries, looking values up in both
// directions, and building per-entity suggestion trees for the expansion
// engine.
package factor
