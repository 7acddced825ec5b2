package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Apply(t *testing.T) {
	t.Run("Marks an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: applying X to position 5
		err := board.Apply(5, PlayerX)

		// Then: the cell holds the mark
		require.NoError(t, err)
		assert.Equal(t, PlayerX, board.Cell(5))
	})

	t.Run("Rejects an occupied cell and never overwrites it", func(t *testing.T) {
		// Given: a board with X on position 1
		board := NewBoard()
		require.NoError(t, board.Apply(1, PlayerX))

		// When: O tries the same position
		err := board.Apply(1, PlayerO)

		// Then: the move is rejected and the cell keeps its mark
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, PlayerX, board.Cell(1))
	})

	t.Run("Rejects out-of-range positions", func(t *testing.T) {
		board := NewBoard()

		for _, pos := range []int{0, -1, 10} {
			err := board.Apply(pos, PlayerX)
			require.ErrorIs(t, err, apperror.ErrInvalidMove)
		}

		// Then: the board is still empty
		assert.Len(t, board.FreeCells(), BoardSize)
	})
}

func TestBoard_CheckWin(t *testing.T) {
	t.Run("Empty board has no winner", func(t *testing.T) {
		board := NewBoard()

		_, won := board.CheckWin()

		assert.False(t, won)
	})

	t.Run("Detects every winning triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board with X on one winning triple
			board := NewBoard()
			for _, pos := range combo {
				require.NoError(t, board.Apply(pos, PlayerX))
			}

			// When: checking for a win
			line, won := board.CheckWin()

			// Then: exactly that triple is reported
			require.True(t, won)
			assert.Equal(t, combo, line)
		}
	})

	t.Run("Mixed marks on a triple don't win", func(t *testing.T) {
		// Given: X O X on the top row
		board := NewBoard()
		require.NoError(t, board.Apply(1, PlayerX))
		require.NoError(t, board.Apply(2, PlayerO))
		require.NoError(t, board.Apply(3, PlayerX))

		_, won := board.CheckWin()

		assert.False(t, won)
	})

	t.Run("First triple in scan order breaks a double-win tie", func(t *testing.T) {
		// Given: X holds the top row and the left column at once
		board := &Board{
			PlayerX, PlayerX, PlayerX,
			PlayerX, EmptyCell, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// When: checking for a win
		line, won := board.CheckWin()

		// Then: the row is reported, because rows scan before columns
		require.True(t, won)
		assert.Equal(t, [3]int{1, 2, 3}, line)
	})

	t.Run("X plays 1 2 3 against O on 5 and 8", func(t *testing.T) {
		// Given: the move sequence X:1 O:5 X:2 O:8 X:3
		board := NewBoard()
		require.NoError(t, board.Apply(1, PlayerX))
		require.NoError(t, board.Apply(5, PlayerO))
		require.NoError(t, board.Apply(2, PlayerX))
		require.NoError(t, board.Apply(8, PlayerO))
		require.NoError(t, board.Apply(3, PlayerX))

		// When: checking for a win
		line, won := board.CheckWin()

		// Then: the top row wins
		require.True(t, won)
		assert.Equal(t, [3]int{1, 2, 3}, line)
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty and partial boards are not full", func(t *testing.T) {
		board := NewBoard()
		assert.False(t, board.IsFull())

		require.NoError(t, board.Apply(1, PlayerX))
		assert.False(t, board.IsFull())
	})

	t.Run("Nine marks fill the board and no line means no winner", func(t *testing.T) {
		// Given: a filled board with no three-in-a-row
		board := &Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		// Then: the board is full and nobody won
		assert.True(t, board.IsFull())
		_, won := board.CheckWin()
		assert.False(t, won)
	})
}

func TestBoard_FreeCells(t *testing.T) {
	// Given: a board with X on 1 and O on 9
	board := NewBoard()
	require.NoError(t, board.Apply(1, PlayerX))
	require.NoError(t, board.Apply(9, PlayerO))

	// When: listing free cells
	free := board.FreeCells()

	// Then: only the seven middle positions remain, in order
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, free)
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, PlayerO, ToggleMark(PlayerX))
	assert.Equal(t, PlayerX, ToggleMark(PlayerO))
}
