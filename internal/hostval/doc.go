// Package hostval is the default implementation of the value primitives the
// renderer delegates to: conversions (!s, !r, !a), the standard format
// specifier subset
//
//	[[fill]align][sign][#][0][width][,|_][.precision][type]
//
// and subscripting into slices, arrays, strings and maps.
//
// Widths are measured in terminal cells (go-runewidth), so East Asian wide
// characters count twice.
package hostval
