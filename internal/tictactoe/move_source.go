package tictactoe

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// MoveSource produces the next move for one participant. GetMove blocks until
// a move is available, the source's own deadline passes, or ctx is cancelled.
// A timed out wait returns apperror.ErrTimeout; a returned cell is always a
// currently empty position on the given board.
type MoveSource interface {
	GetMove(ctx context.Context, board *entity.Board) (int, error)
}

// MoveEvent is an inbound move submitted by the presentation layer on behalf
// of a player.
type MoveEvent struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Cell     int    `json:"cell"`
}

// ConfirmEvent is the invited player's answer to a pending challenge.
type ConfirmEvent struct {
	PlayerID string `json:"player_id"`
	Accept   bool   `json:"accept"`
}

// Participant is one side of a session: an opaque player handle with its
// assigned mark and the source its moves come from.
type Participant struct {
	ID   string
	Mark string
	Bot  bool

	source MoveSource
}

// Notifier receives the engine's outbound events. Implementations render and
// deliver them; the engine never formats messages itself. All methods are
// invoked from the owning session's goroutine.
type Notifier interface {
	ConfirmationRequested(session *Session, requester, opponent *Participant)
	TurnStarted(session *Session, player *Participant)
	MoveApplied(session *Session, player *Participant, cell int)
	MoveRejected(session *Session, playerID string, cell int, reason error)
	GameWon(session *Session, winner, loser *Participant, line [3]int)
	GameDraw(session *Session)
	GameCancelled(session *Session, reason string)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) ConfirmationRequested(*Session, *Participant, *Participant) {}
func (NopNotifier) TurnStarted(*Session, *Participant)                         {}
func (NopNotifier) MoveApplied(*Session, *Participant, int)                    {}
func (NopNotifier) MoveRejected(*Session, string, int, error)                  {}
func (NopNotifier) GameWon(*Session, *Participant, *Participant, [3]int)       {}
func (NopNotifier) GameDraw(*Session)                                          {}
func (NopNotifier) GameCancelled(*Session, string)                             {}
