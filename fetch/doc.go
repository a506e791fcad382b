// Package fetch resolves the dependencies declared by ZON manifests.
//
// A manifest's dependencies struct maps names to {url, hash} entries.
// Each entry resolves to a directory in a content-addressed cache keyed
// by the hash: a hit skips the network entirely, a miss downloads the
// archive, extracts it, and renames the tree into place. Nested
// manifests inside newly cached trees can be processed recursively.
package fetch
