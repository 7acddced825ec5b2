package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

func (that *Server) handleConnect(_ context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := that.parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	payloadResp := Payload{
		Player: &PlayerInfo{ID: payloadReq.Player.ID},
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", payloadReq.Player.ID)

	return nil
}

// handleChallenge starts a new game: against the heuristic AI when with_bot
// is set, otherwise against the named opponent, who must accept first.
func (that *Server) handleChallenge(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleChallenge")

	payloadReq, err := that.parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil || payloadReq.Game == nil {
		log.Error("player or game is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player and game are required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	requester := tictactoe.PlayerRef{ID: payloadReq.Player.ID}

	var opponent *tictactoe.PlayerRef
	if !payloadReq.Game.WithBot {
		if payloadReq.Game.Opponent == "" {
			return that.sendErrorResponse(conn, msg.Action, "opponent is required")
		}

		opponent = &tictactoe.PlayerRef{ID: payloadReq.Game.Opponent}
	}

	session, err := that.registry.CreateSession(payloadReq.Game.Channel, requester, opponent, that)
	if err != nil {
		if errors.Is(err, apperror.ErrPreconditionFailed) {
			return that.sendErrorResponse(conn, msg.Action, err.Error())
		}

		return fmt.Errorf("failed to create session: %w", err)
	}

	go session.Run(ctx)

	log.Info("game created", "gameID", session.ID(), "channel", session.ChannelID())

	payloadResp := Payload{
		Game: &GameInfo{
			ID:      session.ID(),
			Channel: session.ChannelID(),
			Status:  string(session.Status()),
		},
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleConfirm(_ context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil || payloadReq.Game == nil || payloadReq.Game.Accept == nil {
		return that.sendErrorResponse(conn, msg.Action, "player, game and accept are required")
	}

	session, err := that.registry.GetByID(payloadReq.Game.ID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "game not found")
	}

	event := tictactoe.ConfirmEvent{
		PlayerID: payloadReq.Player.ID,
		Accept:   *payloadReq.Game.Accept,
	}

	if err = session.SubmitConfirmation(event); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return nil
}

func (that *Server) handleTurn(_ context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil || payloadReq.Game == nil {
		return that.sendErrorResponse(conn, msg.Action, "player and game are required")
	}

	session, err := that.registry.GetByID(payloadReq.Game.ID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "game not found")
	}

	event := tictactoe.MoveEvent{
		GameID:   session.ID(),
		PlayerID: payloadReq.Player.ID,
		Cell:     payloadReq.Game.Cell,
	}

	if err = session.SubmitMove(event); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return nil
}

func (that *Server) handleHistory(_ context.Context, msg *Message, conn *connection) error {
	payloadResp := Payload{
		Records: that.registry.Records(),
	}

	if err := that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleShow(_ context.Context, msg *Message, conn *connection) error {
	payloadReq, err := that.parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Game == nil {
		return that.sendErrorResponse(conn, msg.Action, "game is required")
	}

	session, err := that.registry.GetByIndex(payloadReq.Game.Index)
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			return that.sendErrorResponse(conn, msg.Action, "game doesn't exist")
		}

		return fmt.Errorf("failed to look up game: %w", err)
	}

	payloadResp := Payload{
		Record: session.Snapshot(),
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) parsePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if err := unmarshalPayload(msg, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

func (that *Server) sendErrorResponse(conn *connection, action, message string) error {
	payload := Payload{Error: message}

	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
