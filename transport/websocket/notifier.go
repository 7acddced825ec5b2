package websocket

import (
	"context"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

// The server is the engine's Notifier: sessions call these from their own
// goroutines and the gateway turns them into frames for the connected
// players.

const archiveTimeout = 5 * time.Second

func (that *Server) ConfirmationRequested(session *tictactoe.Session, requester, opponent *tictactoe.Participant) {
	that.sendToPlayer(opponent.ID, "game:confirmation", Payload{
		Game: &GameInfo{
			ID:      session.ID(),
			Channel: session.ChannelID(),
		},
		Message: requester.ID + " wants to play tic-tac-toe against you",
	})
}

func (that *Server) TurnStarted(session *tictactoe.Session, player *tictactoe.Participant) {
	if player.Bot {
		return
	}

	that.sendToPlayer(player.ID, "game:your_turn", Payload{
		Game: that.gameInfo(session),
	})
}

func (that *Server) MoveApplied(session *tictactoe.Session, player *tictactoe.Participant, cell int) {
	info := that.gameInfo(session)
	info.Turn = player.ID
	info.Cell = cell

	that.broadcast(session, "game:move", Payload{Game: info})
}

func (that *Server) MoveRejected(session *tictactoe.Session, playerID string, cell int, reason error) {
	that.sendToPlayer(playerID, "game:rejected", Payload{
		Game:  &GameInfo{ID: session.ID(), Cell: cell},
		Error: reason.Error(),
	})
}

func (that *Server) GameWon(session *tictactoe.Session, winner, loser *tictactoe.Participant, line [3]int) {
	info := that.gameInfo(session)
	info.Winner = winner.ID
	info.Loser = loser.ID
	info.Line = line[:]

	that.broadcast(session, "game:won", Payload{Game: info})
	that.archiveRecord(session)
}

func (that *Server) GameDraw(session *tictactoe.Session) {
	that.broadcast(session, "game:draw", Payload{Game: that.gameInfo(session)})
	that.archiveRecord(session)
}

func (that *Server) GameCancelled(session *tictactoe.Session, reason string) {
	info := that.gameInfo(session)
	info.Reason = reason

	that.broadcast(session, "game:cancelled", Payload{Game: info})
}

func (that *Server) gameInfo(session *tictactoe.Session) *GameInfo {
	record := session.Snapshot()

	return &GameInfo{
		ID:      session.ID(),
		Channel: session.ChannelID(),
		Status:  string(session.Status()),
		Board:   record.Board[:],
	}
}

func (that *Server) broadcast(session *tictactoe.Session, action string, payload Payload) {
	for _, player := range session.Players() {
		if player.Bot {
			continue
		}

		that.sendToPlayer(player.ID, action, payload)
	}
}

func (that *Server) sendToPlayer(playerID, action string, payload Payload) {
	log := that.logger.With("method", "sendToPlayer", "playerID", playerID)

	conn, ok := that.connectionFor(playerID)
	if !ok {
		log.Info("player has no open connection, dropping notification", "action", action)
		return
	}

	if err := that.sendMessage(conn, action, payload); err != nil {
		log.Error("failed to deliver notification", "action", action, "error", err)
	}
}

// archiveRecord persists the frozen record of a finished game. Cancelled
// games never reach here.
func (that *Server) archiveRecord(session *tictactoe.Session) {
	log := that.logger.With("method", "archiveRecord", "gameID", session.ID())

	record := session.Record()
	if record == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	if err := that.archive.Save(ctx, record); err != nil {
		log.Error("failed to archive game record", "error", err)
	}
}
