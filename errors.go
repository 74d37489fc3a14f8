package lodb

import "errors"

var (
	// ErrInvalid is returned for malformed arguments: empty table names,
	// nil codecs or records, zero record sizes, or an unregistered table.
	ErrInvalid = errors.New("lodb: invalid argument")

	// ErrExists is returned by Insert when a file for the identifier
	// already exists in the table directory.
	ErrExists = errors.New("lodb: record already exists")

	// ErrNotFound is returned when the record file for an identifier does
	// not exist (Get, Update, Delete).
	ErrNotFound = errors.New("lodb: record not found")

	// ErrIO is returned for filesystem failures: open, read, write, sync
	// or remove errors, short writes, and empty reads.
	ErrIO = errors.New("lodb: i/o failure")

	// ErrEncode is returned when the table codec fails to serialize a
	// record within the scratch buffer bound.
	ErrEncode = errors.New("lodb: encode failed")

	// ErrDecode is returned when the table codec cannot parse stored bytes.
	ErrDecode = errors.New("lodb: decode failed")
)
