// Package lodb is an embedded record store for devices with a small
// filesystem and no page cache.
//
// Each logical record is one file. A 64-bit identifier derived by SHA-256
// hashing maps to the file name, so the on-disk layout is simply:
//
//	{root}/{database}/{table}/{16-hex-identifier}.pr
//
// File contents are exactly the bytes produced by the table's Codec: no
// header, no length prefix, no checksum.
//
// # Threading Model
//
// A single non-reentrant mutex serializes every filesystem touch. All
// operations complete synchronously. Select performs its whole directory
// walk, including the per-record read and decode, under one continuous
// lock acquisition, so a scan observes a consistent directory snapshot
// with respect to this store's own mutations.
//
// # Ownership
//
// Every buffer returned from Select is freshly allocated and owned by the
// caller. The store never retains a reference to caller-supplied record
// buffers after an operation returns.
package lodb
