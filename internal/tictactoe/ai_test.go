package tictactoe

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAI(mark string, seed int64) *HeuristicAI {
	return NewHeuristicAI(mark, rand.New(rand.NewSource(seed)), 0) //nolint: gosec // deterministic tests
}

func TestHeuristicAI_TakesImmediateWin(t *testing.T) {
	// Given: O has two in a row with the third cell open, and X threatens too
	board := &entity.Board{
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	ai := newTestAI(entity.PlayerO, 1)

	// When: the AI moves
	cell, err := ai.GetMove(context.Background(), board)

	// Then: it completes its own line instead of blocking X
	require.NoError(t, err)
	assert.Equal(t, 3, cell)
}

func TestHeuristicAI_BlocksOpponentWin(t *testing.T) {
	// Given: X has two in the left column and O has no win of its own
	board := &entity.Board{
		entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
		entity.PlayerX, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	ai := newTestAI(entity.PlayerO, 1)

	// When: the AI moves
	cell, err := ai.GetMove(context.Background(), board)

	// Then: it blocks position 7
	require.NoError(t, err)
	assert.Equal(t, 7, cell)
}

func TestHeuristicAI_PrefersCorners(t *testing.T) {
	// Given: an empty board, no wins or blocks available
	board := entity.NewBoard()

	for seed := int64(0); seed < 20; seed++ {
		ai := newTestAI(entity.PlayerO, seed)

		cell, err := ai.GetMove(context.Background(), board)

		// Then: the opening move is always a corner
		require.NoError(t, err)
		assert.Contains(t, []int{1, 3, 7, 9}, cell)
	}
}

func TestHeuristicAI_TakesCenterWhenCornersGone(t *testing.T) {
	// Given: all corners taken, no one-move win for either side, center open
	board := &entity.Board{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
	}

	ai := newTestAI(entity.PlayerO, 1)

	cell, err := ai.GetMove(context.Background(), board)

	require.NoError(t, err)
	assert.Equal(t, 5, cell)
}

func TestHeuristicAI_FallsBackToEdges(t *testing.T) {
	// Given: only the edges 4 and 6 are free and neither side can complete a
	// line in one move
	board := &entity.Board{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.EmptyCell, entity.PlayerO, entity.EmptyCell,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
	}

	for seed := int64(0); seed < 20; seed++ {
		ai := newTestAI(entity.PlayerO, seed)

		cell, err := ai.GetMove(context.Background(), board)

		require.NoError(t, err)
		assert.Contains(t, []int{2, 4, 6, 8}, cell)
	}
}

func TestHeuristicAI_NeverPicksOccupiedCell(t *testing.T) {
	// Given: AI games played to completion from an empty board
	for seed := int64(0); seed < 50; seed++ {
		board := entity.NewBoard()
		rng := rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic tests
		playerX := NewHeuristicAI(entity.PlayerX, rng, 0)
		playerO := NewHeuristicAI(entity.PlayerO, rng, 0)

		mark := entity.PlayerX
		for !board.IsFull() {
			if _, won := board.CheckWin(); won {
				break
			}

			ai := playerX
			if mark == entity.PlayerO {
				ai = playerO
			}

			cell, err := ai.GetMove(context.Background(), board)
			require.NoError(t, err)

			// Then: every returned cell is applicable
			require.NoError(t, board.Apply(cell, mark))

			mark = entity.ToggleMark(mark)
		}
	}
}

func TestHeuristicAI_FullBoard(t *testing.T) {
	// Given: no free cells at all
	board := &entity.Board{
		entity.PlayerX, entity.PlayerO, entity.PlayerX,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
	}

	ai := newTestAI(entity.PlayerO, 1)

	_, err := ai.GetMove(context.Background(), board)

	assert.ErrorIs(t, err, ErrNoAvailableMoves)
}
