package tictactoe

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// recordingNotifier captures outbound events for assertions.
type recordingNotifier struct {
	NopNotifier

	mu         sync.Mutex
	rejections []string
	cancelled  []string
	won        bool
	draw       bool
}

func (that *recordingNotifier) MoveRejected(_ *Session, playerID string, _ int, _ error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rejections = append(that.rejections, playerID)
}

func (that *recordingNotifier) GameCancelled(_ *Session, reason string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelled = append(that.cancelled, reason)
}

func (that *recordingNotifier) GameWon(*Session, *Participant, *Participant, [3]int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.won = true
}

func (that *recordingNotifier) GameDraw(*Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.draw = true
}

func (that *recordingNotifier) rejected() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.rejections...)
}

func newHumanSession(t *testing.T, notifier Notifier, conf Config) *Session {
	t.Helper()

	opponent := &PlayerRef{ID: "bob"}

	return newSession(testLogger(), notifier, conf, "game-1", "channel-1", PlayerRef{ID: "alice"}, opponent)
}

func TestHumanMoveSource_GetMove(t *testing.T) {
	t.Run("Returns the move of the polled participant", func(t *testing.T) {
		// Given: a human-vs-human session and alice's move source
		session := newHumanSession(t, NopNotifier{}, Config{TurnTimeout: time.Second})
		source := session.players[0].source

		// When: alice submits cell 5 while the source waits
		go func() {
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "alice", Cell: 5}
		}()

		cell, err := source.GetMove(context.Background(), session.Board())

		// Then: her move is returned
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Rejects mismatched senders without consuming the wait", func(t *testing.T) {
		// Given: alice's source is polled but bob keeps sending events
		notifier := &recordingNotifier{}
		session := newHumanSession(t, notifier, Config{TurnTimeout: time.Second})
		source := session.players[0].source

		go func() {
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "bob", Cell: 1}
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "bob", Cell: 2}
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "alice", Cell: 3}
		}()

		cell, err := source.GetMove(context.Background(), session.Board())

		// Then: alice's later move still lands, and bob got one rejection per event
		require.NoError(t, err)
		assert.Equal(t, 3, cell)
		assert.Equal(t, []string{"bob", "bob"}, notifier.rejected())
	})

	t.Run("Rejects occupied cells and keeps waiting", func(t *testing.T) {
		// Given: cell 1 is already marked
		notifier := &recordingNotifier{}
		session := newHumanSession(t, notifier, Config{TurnTimeout: time.Second})
		require.NoError(t, session.Board().Apply(1, entity.PlayerO))
		source := session.players[0].source

		go func() {
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "alice", Cell: 1}
			session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "alice", Cell: 2}
		}()

		cell, err := source.GetMove(context.Background(), session.Board())

		// Then: the occupied cell is rejected, the retry is accepted
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
		assert.Equal(t, []string{"alice"}, notifier.rejected())
	})

	t.Run("Times out when only mismatched events arrive", func(t *testing.T) {
		// Given: a short deadline and a stream of wrong-sender events
		notifier := &recordingNotifier{}
		session := newHumanSession(t, notifier, Config{TurnTimeout: 80 * time.Millisecond})
		source := session.players[0].source

		done := make(chan struct{})
		go func() {
			defer close(done)

			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()

			timeout := time.After(300 * time.Millisecond)
			for {
				select {
				case <-ticker.C:
					select {
					case session.moves <- MoveEvent{GameID: session.ID(), PlayerID: "bob", Cell: 1}:
					default:
					}
				case <-timeout:
					return
				}
			}
		}()

		start := time.Now()
		_, err := source.GetMove(context.Background(), session.Board())
		elapsed := time.Since(start)
		<-done

		// Then: the wait ends with a timeout near the original deadline;
		// mismatched events neither extended nor reset it
		require.ErrorIs(t, err, apperror.ErrTimeout)
		assert.Less(t, elapsed, 250*time.Millisecond)
		assert.NotEmpty(t, notifier.rejected())
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		session := newHumanSession(t, NopNotifier{}, Config{TurnTimeout: time.Second})
		source := session.players[0].source

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.GetMove(ctx, session.Board())

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
