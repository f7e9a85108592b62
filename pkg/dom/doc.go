// Package dom offers the small set of document operations the validator needs
// on top of golang.org/x/net/html: attribute and class manipulation, element
// queries, descriptor extraction and stable field identifiers.
//
// Nodes are mutated in place. Callers own the tree and serialise access to it.
package dom
