// Package dupfind implements duplicate file detection over a directory tree.
//
// It walks the tree using fastwalk for parallel traversal and groups files
// whose fingerprints match under one or more criteria: content hash, file
// size, filename, or filename stem. Each criterion produces an independent
// result section together with the space reclaimable by removing all but
// one copy per group.
package dupfind
