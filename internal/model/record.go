// Package model contains the hostel entities persisted by the record
// stores. Every entity carries an integer ID that is unique within its own
// store; the store assigns it on insert when the caller leaves it zero.
package model

// Record is the identity contract shared by all entities. WithRecordID
// returns a copy of the value carrying the given id, which lets generic
// stores assign identifiers without reflection.
type Record[T any] interface {
	RecordID() int
	WithRecordID(id int) T
}
