package websocket

import (
	"github.com/goccy/go-json"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

const (
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string      `json:"game_id,omitempty"`
	Size   int         `json:"size,omitempty"`
	Mark   entity.Mark `json:"mark,omitempty"`
	Cell   int         `json:"cell"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}
