// Package snippet renders the markup excerpts returned by the code-search
// service into printable, optionally colourised lines.
//
// A snippet is a table of rows. Each row carries a line number cell and a
// code cell whose matches are wrapped in <mark> spans. Rows without a match
// are hidden unless context mode is on, and jump rows (class "jump") mark a
// gap between non-contiguous fragments.
//
// Malformed markup never fails rendering: unterminated highlight spans are
// closed at the end of their row, unterminated rows at the next row or the
// end of the snippet, and rows without a leading number are printed without
// one.
package snippet
