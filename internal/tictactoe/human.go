package tictactoe

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// HumanMoveSource waits for a move event addressed to its participant on the
// session's inbound channel. The deadline is wall-clock, measured from the
// moment GetMove is called; events from other senders or for unplayable cells
// are rejected through the session's notifier and do not consume or reset it.
type HumanMoveSource struct {
	session *Session
	player  *Participant
	timeout time.Duration
}

func newHumanMoveSource(session *Session, player *Participant, timeout time.Duration) *HumanMoveSource {
	return &HumanMoveSource{
		session: session,
		player:  player,
		timeout: timeout,
	}
}

func (that *HumanMoveSource) GetMove(ctx context.Context, board *entity.Board) (int, error) {
	timer := time.NewTimer(that.timeout)
	defer timer.Stop()

	for {
		select {
		case event := <-that.session.moves:
			if event.PlayerID != that.player.ID {
				that.session.notifier.MoveRejected(that.session, event.PlayerID, event.Cell, apperror.ErrNotYourTurn)
				continue
			}

			if event.Cell < 1 || event.Cell > entity.BoardSize || board.Cell(event.Cell) != entity.EmptyCell {
				that.session.notifier.MoveRejected(that.session, event.PlayerID, event.Cell, apperror.ErrInvalidMove)
				continue
			}

			return event.Cell, nil
		case <-timer.C:
			return 0, apperror.ErrTimeout
		case <-ctx.Done():
			return 0, fmt.Errorf("move wait interrupted: %w", ctx.Err())
		}
	}
}
