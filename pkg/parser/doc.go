// Package parser turns class-diagram text into a [diagram.Graph].
//
// # Language
//
// The input is line oriented. Every physical line is trimmed and blank lines
// are dropped; each remaining line is classified by the first rule that
// matches:
//
//	note ...                 ignored everywhere
//	class Name {             opens a class block
//	}                        closes the current block
//	A <|-- B : label         relationship (any of the relation tokens)
//	Name : +member           inline member
//	anything else            ignored
//
// Inside a class block every line except a note, a block open or a block
// close becomes a member of the open class, even if it looks like a
// relationship. Blocks do not nest; a second "class X {" simply switches
// the block to X.
//
// # Relationships
//
// A relationship line is first matched against the full form
//
//	Left "cardL" <op> "cardR" Right : label
//
// where both cardinalities, the quotes around the class names and the label
// are optional. Cardinalities are recognized and discarded. Because every
// part but the operator is optional, nearly every well formed line is
// settled by this form. Lines that do not fit it are split on the relation
// token found by the classifier, then on the first ":". If either side is
// not a plain class name no edge is produced. The split is what keeps
// "A --> B" from ever yielding a target named "> B".
//
// The operator must be one of [diagram.Relations]. Mermaid's reversed
// forms "--*", "--o" and "..|>" are not in that list; such lines produce
// no edge and are reported as a relationship without class names.
//
// # Best effort
//
// Parsing never fails. Unknown lines are dropped, classes referenced before
// they are declared are created empty, and empty input yields an empty
// graph. [ParseWithReport] additionally returns a [Report] listing what was
// dropped, for diagnostics.
//
// # Concurrency
//
// Parse keeps no state between calls and is safe to call from multiple
// goroutines.
package parser
