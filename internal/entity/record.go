package entity

// GameRecord is the immutable snapshot of a session, frozen when the session
// reaches a terminal status.
type GameRecord struct {
	ID        string            `json:"id"`
	ChannelID string            `json:"channel_id,omitempty"`
	Board     [BoardSize]string `json:"board"`
	Players   [2]string         `json:"players"`
	Winner    string            `json:"winner,omitempty"`
	Loser     string            `json:"loser,omitempty"`
	Draw      bool              `json:"draw,omitempty"`
	Cancelled bool              `json:"cancelled,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}
