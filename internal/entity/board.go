package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	EmptyCell = ""

	BoardSize = 9
)

// WinCombos holds the eight winning triples in their fixed scan order:
// rows top to bottom, columns left to right, then the two diagonals.
// Positions are 1-based, row-major.
var WinCombos = [8][3]int{
	{1, 2, 3},
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9},
	{3, 5, 7},
}

// Board is a 3x3 grid addressed by 1-based positions.
type Board [BoardSize]string

func NewBoard() *Board {
	return &Board{}
}

// Cell returns the mark at a 1-based position. The caller must pass a
// position in [1, BoardSize].
func (that *Board) Cell(pos int) string {
	return that[pos-1]
}

// Apply marks a cell. It never overwrites: an occupied or out-of-range
// position is rejected and the board stays untouched.
func (that *Board) Apply(pos int, mark string) error {
	if pos < 1 || pos > BoardSize {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, pos)
	}

	if that[pos-1] != EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, pos)
	}

	that[pos-1] = mark

	return nil
}

// CheckWin scans WinCombos in order and reports the first triple whose three
// cells share a non-empty mark. Only one line is ever reported; if a move
// completes two lines at once, the scan order breaks the tie.
func (that *Board) CheckWin() ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]-1], that[combo[1]-1], that[combo[2]-1]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// FreeCells returns the 1-based positions that are still empty, in position
// order.
func (that *Board) FreeCells() []int {
	free := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			free = append(free, i+1)
		}
	}

	return free
}

// Cells returns the marks in position order for display.
func (that *Board) Cells() [BoardSize]string {
	return *that
}

// ToggleMark returns the other player's mark.
func ToggleMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
