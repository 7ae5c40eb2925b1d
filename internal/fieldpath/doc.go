// Package fieldpath splits the name part of a replacement field into a head
// selector and a chain of subscript trailers.
//
//	"0[key][2]"  → Positional(0), [Key("key"), Index(2)]
//	"name"       → Keyword("name")
//	""           → AutoPositional
//
// Trailers are produced lazily by a forward-only cursor; malformed trailers are
// reported when the cursor reaches them, not by Split. Attribute access
// ("a.b") is recognised and rejected with diag.ErrUnsupportedSyntax.
//
// All spans are relative to the field name.
package fieldpath
