package grid

import "fmt"

// Pattern dimensions.
const (
	// BlockSize is the number of items in one occurrence of the pattern.
	BlockSize = 6

	// RowSize is the number of items sharing one bigEdge-tall row.
	RowSize = BlockSize / 2
)

// Role is the fixed position of an item within its block.
type Role int

// Slot roles, numbered by their offset in the block.
const (
	BigUpper Role = iota
	SmallRightUpper
	SmallRightLower
	SmallLeftUpper
	SmallLeftLower
	BigLower
)

var roleNames = [BlockSize]string{
	"big-upper",
	"small-right-upper",
	"small-right-lower",
	"small-left-upper",
	"small-left-lower",
	"big-lower",
}

// String returns the kebab-case role name.
func (r Role) String() string {
	if r < 0 || int(r) >= BlockSize {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// IsBig reports whether the role holds a big tile.
func (r Role) IsBig() bool { return r == BigUpper || r == BigLower }

// IsLowerSmall reports whether the role is a small tile stacked under another
// small tile. Its top sits smallHeight below the row baseline.
func (r Role) IsLowerSmall() bool { return r == SmallRightLower || r == SmallLeftLower }

// SlotOf returns the role of index. The role depends on the index alone.
func SlotOf(index int) Role {
	return Role(index % BlockSize)
}

// RowOf returns the bigEdge-tall row the index falls in.
func RowOf(index int) int {
	return index / RowSize
}
