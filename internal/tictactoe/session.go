package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
	StatusCancelled  Status = "cancelled"
)

// moveEventBuffer bounds how many inbound events can pile up while the turn
// loop is between waits. Mismatched events are drained and rejected by the
// active wait, so a small buffer is enough.
const moveEventBuffer = 8

// Config carries the engine timing knobs.
type Config struct {
	TurnTimeout    time.Duration
	ConfirmTimeout time.Duration
	BotThinkDelay  time.Duration
	BotID          string
}

// Session is one match from creation through a terminal status. It owns its
// board and participants exclusively; all mutation happens on the goroutine
// running Run.
type Session struct {
	id        string
	channelID string
	logger    *slog.Logger
	notifier  Notifier

	players [2]*Participant
	current int

	moves    chan MoveEvent
	confirms chan ConfirmEvent

	confirmTimeout time.Duration

	mu           sync.RWMutex
	board        *entity.Board
	status       Status
	winner       *Participant
	loser        *Participant
	cancelReason string
	record       *entity.GameRecord
}

// newSession wires a session for a requester against either a human opponent
// or, when opponent is nil, the heuristic AI. The requester always plays X.
func newSession(logger *slog.Logger, notifier Notifier, conf Config, id, channelID string, requester PlayerRef, opponent *PlayerRef) *Session {
	session := &Session{
		id:        id,
		channelID: channelID,
		logger:    logger,
		notifier:  notifier,

		moves:    make(chan MoveEvent, moveEventBuffer),
		confirms: make(chan ConfirmEvent, 1),

		confirmTimeout: conf.ConfirmTimeout,

		board:  entity.NewBoard(),
		status: StatusPending,
	}

	session.players[0] = &Participant{ID: requester.ID, Mark: entity.PlayerX}
	session.players[0].source = newHumanMoveSource(session, session.players[0], conf.TurnTimeout)

	if opponent == nil {
		botID := conf.BotID
		if botID == "" {
			botID = "bot"
		}

		session.players[1] = &Participant{ID: botID, Mark: entity.PlayerO, Bot: true}
		session.players[1].source = NewHeuristicAI(entity.PlayerO, nil, conf.BotThinkDelay)

		return session
	}

	session.players[1] = &Participant{ID: opponent.ID, Mark: entity.PlayerO}
	session.players[1].source = newHumanMoveSource(session, session.players[1], conf.TurnTimeout)

	return session
}

// Run drives the session to a terminal status. It must be called exactly once
// and blocks until the session terminates.
func (that *Session) Run(ctx context.Context) {
	log := that.logger.With("component", "session", "gameID", that.id)

	if that.needsConfirmation() {
		if !that.awaitConfirmation(ctx) {
			return
		}
	}

	that.setStatus(StatusInProgress)
	that.play(ctx, log)
}

// needsConfirmation reports whether a pre-game accept/decline phase applies.
// Only human-vs-human games ask for one.
func (that *Session) needsConfirmation() bool {
	return !that.players[1].Bot
}

// awaitConfirmation waits for the invited player to accept. Decline and
// timeout cancel the session; it never enters the turn loop.
func (that *Session) awaitConfirmation(ctx context.Context) bool {
	requester, opponent := that.players[0], that.players[1]
	that.notifier.ConfirmationRequested(that, requester, opponent)

	timer := time.NewTimer(that.confirmTimeout)
	defer timer.Stop()

	for {
		select {
		case event := <-that.confirms:
			// only the invited player can answer
			if event.PlayerID != opponent.ID {
				continue
			}

			if !event.Accept {
				that.cancel(fmt.Sprintf("%s declined the game", opponent.ID))
				return false
			}

			return true
		case <-timer.C:
			that.cancel("running out of time, cancelled game")
			return false
		case <-ctx.Done():
			that.cancel("shutting down")
			return false
		}
	}
}

// play is the turn loop: at most one move per cell, alternating participants
// after every accepted move.
func (that *Session) play(ctx context.Context, log *slog.Logger) {
	for turn := 0; turn < entity.BoardSize; turn++ {
		player := that.players[that.current]
		opponent := that.players[1-that.current]

		that.notifier.TurnStarted(that, player)

		cell, err := player.source.GetMove(ctx, that.Board())
		if errors.Is(err, apperror.ErrTimeout) {
			that.cancel(fmt.Sprintf("%s ran out of time", player.ID))
			return
		}

		if err != nil {
			log.Error("move source failed", "player", player.ID, "error", err)
			that.cancel("shutting down")

			return
		}

		if err = that.applyMove(cell, player.Mark); err != nil {
			// A source handed out an occupied or out-of-range cell. That is an
			// engine bug, not user input; the board stays untouched.
			log.Error("move source returned an unplayable cell", "player", player.ID, "cell", cell, "error", err)
			that.cancel("internal error")

			return
		}

		that.notifier.MoveApplied(that, player, cell)

		if line, won := that.board.CheckWin(); won {
			that.finishWon(player, opponent, line)
			return
		}

		that.current = 1 - that.current
	}

	that.finishDraw()
}

func (that *Session) applyMove(cell int, mark string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.Apply(cell, mark)
}

// SubmitMove hands an inbound move event to the session. The active human
// wait filters it; events arriving outside the turn loop are reported back to
// the caller instead.
func (that *Session) SubmitMove(event MoveEvent) error {
	switch that.Status() {
	case StatusPending:
		return apperror.ErrGameNotStarted
	case StatusWon, StatusDraw, StatusCancelled:
		return apperror.ErrGameFinished
	case StatusInProgress:
	}

	select {
	case that.moves <- event:
		return nil
	default:
		return fmt.Errorf("%w: game %s is not accepting moves", apperror.ErrNotYourTurn, that.id)
	}
}

// SubmitConfirmation delivers the accept/decline answer for the pending
// phase.
func (that *Session) SubmitConfirmation(event ConfirmEvent) error {
	if that.Status() != StatusPending {
		return apperror.ErrGameNotStarted
	}

	select {
	case that.confirms <- event:
		return nil
	default:
		// an answer is already queued; drop the duplicate
		return nil
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) ChannelID() string {
	return that.channelID
}

func (that *Session) Players() [2]*Participant {
	return that.players
}

func (that *Session) Status() Status {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.status
}

func (that *Session) IsTerminal() bool {
	switch that.Status() {
	case StatusWon, StatusDraw, StatusCancelled:
		return true
	default:
		return false
	}
}

// Board returns the live board. Only the session goroutine mutates it; other
// goroutines should use Snapshot instead.
func (that *Session) Board() *entity.Board {
	return that.board
}

// Record returns the frozen record, or nil while the session is still live.
func (that *Session) Record() *entity.GameRecord {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.record
}

// Snapshot returns the frozen record for a terminal session, or a
// point-in-time copy of a live one.
func (that *Session) Snapshot() *entity.GameRecord {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.record != nil {
		return that.record
	}

	return that.buildRecordLocked()
}

func (that *Session) setStatus(status Status) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.status = status
}

func (that *Session) cancel(reason string) {
	that.mu.Lock()
	that.status = StatusCancelled
	that.cancelReason = reason
	that.record = that.buildRecordLocked()
	that.mu.Unlock()

	that.notifier.GameCancelled(that, reason)
}

func (that *Session) finishWon(winner, loser *Participant, line [3]int) {
	that.mu.Lock()
	that.status = StatusWon
	that.winner = winner
	that.loser = loser
	that.record = that.buildRecordLocked()
	that.mu.Unlock()

	that.notifier.GameWon(that, winner, loser, line)
}

func (that *Session) finishDraw() {
	that.mu.Lock()
	that.status = StatusDraw
	that.record = that.buildRecordLocked()
	that.mu.Unlock()

	that.notifier.GameDraw(that)
}

func (that *Session) buildRecordLocked() *entity.GameRecord {
	record := &entity.GameRecord{
		ID:        that.id,
		ChannelID: that.channelID,
		Board:     that.board.Cells(),
		Players:   [2]string{that.players[0].ID, that.players[1].ID},
		Draw:      that.status == StatusDraw,
		Cancelled: that.status == StatusCancelled,
		Reason:    that.cancelReason,
	}

	if that.winner != nil {
		record.Winner = that.winner.ID
		record.Loser = that.loser.ID
	}

	return record
}
