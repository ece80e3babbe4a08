// Package corpusmaker builds plain-text training corpora annotated with
// entity-link spans from encyclopedia markup dumps. It scans dump files in
// byte-range splits to recover (title, markup) records, parses the markup
// into a tree, and renders the tree to plain text while recording the span
// and target of every embedded link.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, goquery/, dump/).
package corpusmaker
