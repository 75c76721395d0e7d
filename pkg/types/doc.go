// Package types defines the core data model for factorlink: the tagged
// variant Value decoded from schema-less index documents, the Document
// shape of a per-entity hit, and the nested Tree structure that factor
// graphs are built from.
package types
