package tictactoe

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
)

// PlayerRef identifies a prospective participant before a session exists.
type PlayerRef struct {
	ID  string
	Bot bool
}

// Registry tracks every session created during the process lifetime, in
// creation order. Entries are never removed; terminal sessions stay around
// for history queries.
type Registry struct {
	logger *slog.Logger
	conf   Config

	mu       sync.RWMutex
	sessions []*Session
}

func NewRegistry(logger *slog.Logger, conf Config) *Registry {
	return &Registry{
		logger: logger,
		conf:   conf,
	}
}

// CreateSession gates a new match on the registry's invariants and appends it
// to history immediately, before any confirmation: declined and timed out
// games still occupy a history slot. A nil opponent means a game against the
// heuristic AI.
func (that *Registry) CreateSession(channelID string, requester PlayerRef, opponent *PlayerRef, notifier Notifier) (*Session, error) {
	if opponent != nil {
		if opponent.ID == requester.ID {
			return nil, apperror.ErrSelfChallenge
		}

		if opponent.Bot {
			return nil, apperror.ErrBotOpponent
		}
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.channelFreeLocked(channelID) {
		return nil, apperror.ErrChannelBusy
	}

	if !that.participantFreeLocked(requester.ID) {
		return nil, apperror.ErrPlayerBusy
	}

	if opponent != nil && !that.participantFreeLocked(opponent.ID) {
		return nil, fmt.Errorf("%w: opponent", apperror.ErrPlayerBusy)
	}

	session := newSession(that.logger, notifier, that.conf, pkg.GenerateGameID(), channelID, requester, opponent)
	that.sessions = append(that.sessions, session)

	return session, nil
}

// IsChannelFree reports whether no non-terminal session is bound to the
// channel.
func (that *Registry) IsChannelFree(channelID string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.channelFreeLocked(channelID)
}

// IsParticipantFree reports whether the identity appears in no non-terminal
// session.
func (that *Registry) IsParticipantFree(playerID string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.participantFreeLocked(playerID)
}

// GetByIndex fetches a session by its 1-based history index.
func (that *Registry) GetByIndex(index int) (*Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if index < 1 || index > len(that.sessions) {
		return nil, fmt.Errorf("%w: game #%d", apperror.ErrGameNotFound, index)
	}

	return that.sessions[index-1], nil
}

// GetByID fetches a session by its game ID.
func (that *Registry) GetByID(id string) (*Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, session := range that.sessions {
		if session.ID() == id {
			return session, nil
		}
	}

	return nil, fmt.Errorf("%w: game %s", apperror.ErrGameNotFound, id)
}

// Records lists the frozen records of terminal non-cancelled sessions, in
// creation order.
func (that *Registry) Records() []*entity.GameRecord {
	that.mu.RLock()
	defer that.mu.RUnlock()

	records := make([]*entity.GameRecord, 0, len(that.sessions))
	for _, session := range that.sessions {
		record := session.Record()
		if record == nil || record.Cancelled {
			continue
		}

		records = append(records, record)
	}

	return records
}

// Len returns how many sessions have ever been created, terminal or not.
func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *Registry) channelFreeLocked(channelID string) bool {
	for _, session := range that.sessions {
		if session.ChannelID() == channelID && !session.IsTerminal() {
			return false
		}
	}

	return true
}

func (that *Registry) participantFreeLocked(playerID string) bool {
	for _, session := range that.sessions {
		if session.IsTerminal() {
			continue
		}

		for _, player := range session.Players() {
			if player.ID == playerID {
				return false
			}
		}
	}

	return true
}
