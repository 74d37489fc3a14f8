package lodb

import "fmt"

// ScratchSize is the hard ceiling on a record's encoded form. Encoding or
// reading beyond this bound is a failure, not a resize.
const ScratchSize = 2048

// Codec translates between a table's in-memory records and their on-disk
// byte representation. Implementations are supplied at table registration
// and never change afterwards.
//
// Encode serializes rec into buf and returns the number of bytes written.
// Decode parses data into rec, which the store has already zeroed so that
// fields absent from the encoded form have deterministic default values.
type Codec interface {
	Encode(rec []byte, buf []byte) (int, error)
	Decode(data []byte, rec []byte) error
}

// RawCodec stores fixed-size records verbatim: the on-disk bytes are the
// in-memory bytes. A stored file whose length differs from Size is
// malformed under this codec. Used by the CLI and useful for tests.
type RawCodec struct {
	Size int
}

// Encode copies rec into buf.
func (c RawCodec) Encode(rec []byte, buf []byte) (int, error) {
	if len(rec) != c.Size {
		return 0, fmt.Errorf("raw codec: record is %d bytes, want %d", len(rec), c.Size)
	}
	if len(rec) > len(buf) {
		return 0, fmt.Errorf("raw codec: record exceeds %d-byte buffer", len(buf))
	}
	return copy(buf, rec), nil
}

// Decode copies data into rec.
func (c RawCodec) Decode(data []byte, rec []byte) error {
	if len(data) != c.Size {
		return fmt.Errorf("raw codec: stored form is %d bytes, want %d", len(data), c.Size)
	}
	if len(rec) < c.Size {
		return fmt.Errorf("raw codec: output buffer is %d bytes, want %d", len(rec), c.Size)
	}
	copy(rec, data)
	return nil
}
