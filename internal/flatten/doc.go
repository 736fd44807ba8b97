// Package flatten combines the text members of an archive into one document.
//
// Selected entries are decoded concurrently on a bounded worker pool. The
// call returns only after every decode has settled; one failed decode fails
// the whole call. Blocks are assembled in sorted-name order so the combined
// document is byte-for-byte reproducible for the same archive and filter.
//
// Layout:
//
//	Content collected from: <label>
//	Filtering by extensions: .md, .go      (omitted when every entry is selected)
//
//	========================================
//	File: <entry name>
//	========================================
//
//	<entry text>
//
package flatten
