// Package journal provides an optional SQLite-backed audit log of
// committed record mutations.
//
// The journal is strictly after-the-fact: the store notifies it once a
// mutation has already hit the filesystem, and an append failure never
// fails the mutation. It is an audit trail, not a write-ahead log, and
// plays no part in crash recovery.
//
// All ordering uses a monotonic seq column assigned by an in-process
// logical clock, never wall-clock timestamps; readback queries ORDER BY
// seq so entries replay in commit order.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package journal
