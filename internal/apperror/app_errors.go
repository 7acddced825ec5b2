package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrTimeout        = errors.New("ran out of time")
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameNotStarted = errors.New("game is not started")

	ErrPreconditionFailed = errors.New("precondition failed")

	ErrChannelBusy   = fmt.Errorf("%w: channel already hosts an active game", ErrPreconditionFailed)
	ErrPlayerBusy    = fmt.Errorf("%w: player is already in an active game", ErrPreconditionFailed)
	ErrSelfChallenge = fmt.Errorf("%w: you can't play against yourself", ErrPreconditionFailed)
	ErrBotOpponent   = fmt.Errorf("%w: you can't play against another bot", ErrPreconditionFailed)
)
