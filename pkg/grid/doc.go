// Package grid computes the geometry of the repeating two-small-one-big tile
// pattern.
//
// Items are laid out in blocks of six. Each block spans two rows of height
// bigEdge: the first row holds a big tile on the left and two stacked small
// tiles on the right, the second row mirrors it.
//
//	––––––––––
//	|     | 1 |
//	|  0  |–––|
//	|     | 2 |
//	|–––––––––|
//	| 3 |     |
//	|–––|  5  |
//	| 4 |     |
//	––––––––––
//
// # Geometry Table
//
// [NewTable] derives every slot rectangle from the viewport width and the
// aspect ratio (big tile edge / viewport width):
//
//	bigEdge     = round(aspect × width)
//	smallWidth  = width − bigEdge
//	smallHeight = bigEdge / 2
//
// A [Table] is an immutable value. Callers rebuild it when the viewport
// changes instead of mutating cached arrays.
//
// # Position Mapping
//
// [SlotOf] and [Table.RowOffset] map a global index into the pattern: the role
// repeats every six indices and the row advances by bigEdge every three. A
// [Frame] pins the pattern to the screen through an anchored baseline so that
// rectangles line up with whatever is already displayed.
package grid
