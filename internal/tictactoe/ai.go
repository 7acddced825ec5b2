package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const centerCell = 5

var (
	cornerCells = [4]int{1, 3, 7, 9}
	edgeCells   = [4]int{2, 4, 6, 8}
)

// HeuristicAI picks moves by a fixed priority list: complete its own winning
// line, block the opponent's, then a random empty corner, the center, and
// finally a random empty edge. It never times out and never returns an
// occupied cell. A short random think delay keeps it from answering
// instantly.
type HeuristicAI struct {
	mark     string
	rng      *rand.Rand
	maxThink time.Duration
}

// NewHeuristicAI builds an AI playing the given mark. rng may be nil, in
// which case a time-seeded source is used; tests pass a fixed seed.
func NewHeuristicAI(mark string, rng *rand.Rand, maxThink time.Duration) *HeuristicAI {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // not used for anything secret
	}

	return &HeuristicAI{
		mark:     mark,
		rng:      rng,
		maxThink: maxThink,
	}
}

func (that *HeuristicAI) GetMove(ctx context.Context, board *entity.Board) (int, error) {
	if err := that.think(ctx); err != nil {
		return 0, err
	}

	free := board.FreeCells()
	if len(free) == 0 {
		return 0, ErrNoAvailableMoves
	}

	// Probe this AI's own mark before the opponent's, so an immediate win is
	// always taken instead of blocked for.
	for _, mark := range [2]string{that.mark, entity.ToggleMark(that.mark)} {
		for _, cell := range free {
			probe := *board
			probe[cell-1] = mark
			if _, won := probe.CheckWin(); won {
				return cell, nil
			}
		}
	}

	if cell, ok := that.pick(free, cornerCells[:]); ok {
		return cell, nil
	}

	if board.Cell(centerCell) == entity.EmptyCell {
		return centerCell, nil
	}

	if cell, ok := that.pick(free, edgeCells[:]); ok {
		return cell, nil
	}

	return 0, ErrNoAvailableMoves
}

// think sleeps for a uniformly random slice of maxThink without blocking
// anything but the owning session's turn.
func (that *HeuristicAI) think(ctx context.Context) error {
	if that.maxThink <= 0 {
		return nil
	}

	delay := time.Duration(that.rng.Float64() * float64(that.maxThink))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("think interrupted: %w", ctx.Err())
	}
}

// pick chooses uniformly at random among the candidates that are still free.
func (that *HeuristicAI) pick(free, candidates []int) (int, bool) {
	open := make([]int, 0, len(candidates))
	for _, cell := range candidates {
		for _, f := range free {
			if cell == f {
				open = append(open, cell)
				break
			}
		}
	}

	if len(open) == 0 {
		return 0, false
	}

	return open[that.rng.Intn(len(open))], true
}
