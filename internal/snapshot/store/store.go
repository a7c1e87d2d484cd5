// Package store holds the key-value backends behind the snapshot repository.
//
// Error contract, shared by every backend:
//   - Get returns sentinel.ErrNotFound for a missing or expired key
//   - Delete of a missing key is not an error
//   - a zero ttl keeps the value until it is deleted
package store
