// Package entities contains core business entities.
package entities

// DesignerLoad aggregates a designer's open assigned requests by
// status. Total counts only pending, awaiting and in-progress work;
// ATTENTION and DONE are excluded because they carry no active load.
type DesignerLoad struct {
	Designer   UserRef
	Pending    int64
	Awaiting   int64
	InProgress int64
	Total      int64
}
