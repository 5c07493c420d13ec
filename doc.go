// Package radixdb implements an append-only paged blob store: a single
// regular file mapped into memory as a fixed-size header followed by a
// sequence of fixed-size data pages, serving variable-length,
// length-prefixed blobs out of those pages via zero-copy shared handles.
//
// The store grows by appending to a single mutable tail page that is
// sealed and promoted to an immutable mapped page once full. It is
// designed to sit underneath a radix-tree index: this package only knows
// about opaque byte blobs and their logical offsets, never about tree
// structure.
package radixdb
