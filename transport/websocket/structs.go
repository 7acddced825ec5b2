package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries every request and response field; unused fields are
// omitted.
type Payload struct {
	Player  *PlayerInfo          `json:"player,omitempty"`
	Game    *GameInfo            `json:"game,omitempty"`
	Records []*entity.GameRecord `json:"records,omitempty"`
	Record  *entity.GameRecord   `json:"record,omitempty"`
	Message string               `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func unmarshalPayload(msg *Message, payload *Payload) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	return json.Unmarshal(msg.Payload, payload)
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Mark string `json:"mark,omitempty"`
}

type GameInfo struct {
	ID       string   `json:"id,omitempty"`
	Channel  string   `json:"channel,omitempty"`
	Opponent string   `json:"opponent,omitempty"`
	WithBot  bool     `json:"with_bot,omitempty"`
	Board    []string `json:"board,omitempty"`
	Status   string   `json:"status,omitempty"`
	Turn     string   `json:"turn,omitempty"`
	Cell     int      `json:"cell,omitempty"`
	Accept   *bool    `json:"accept,omitempty"`
	Index    int      `json:"index,omitempty"`
	Winner   string   `json:"winner,omitempty"`
	Loser    string   `json:"loser,omitempty"`
	Line     []int    `json:"line,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}
