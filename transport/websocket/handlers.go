package websocket

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return c.send(msg.Action, ResponsePayload{Error: "invalid payload"})
	}

	game, err := that.gameService.CreateGame(ctx, payload.Size)
	if err != nil {
		return c.send(msg.Action, ResponsePayload{Error: err.Error()})
	}

	that.watch(game.ID, c)

	return c.send(msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleJoinGame(ctx context.Context, c *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil || payload.GameID == "" {
		return c.send(msg.Action, ResponsePayload{Error: "game_id is required"})
	}

	game, err := that.gameService.GetGame(ctx, payload.GameID)
	if err != nil {
		return c.send(msg.Action, ResponsePayload{Error: err.Error()})
	}

	that.watch(game.ID, c)

	return c.send(msg.Action, ResponsePayload{Game: game})
}

// handleGameTurn - errors go back to the sender only, a successful turn reaches every watcher.
func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil || payload.GameID == "" {
		return c.send(msg.Action, ResponsePayload{Error: "game_id is required"})
	}

	game, err := that.gameService.MakeTurn(ctx, payload.GameID, payload.Mark, payload.Cell)
	if err != nil {
		return c.send(msg.Action, ResponsePayload{Game: game, Error: err.Error()})
	}

	that.watch(game.ID, c)
	that.broadcast(msg.Action, game)

	return nil
}

func (that *Server) handleResetGame(ctx context.Context, c *client, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil || payload.GameID == "" {
		return c.send(msg.Action, ResponsePayload{Error: "game_id is required"})
	}

	game, err := that.gameService.ResetGame(ctx, payload.GameID)
	if err != nil {
		return c.send(msg.Action, ResponsePayload{Error: err.Error()})
	}

	that.watch(game.ID, c)
	that.broadcast(msg.Action, game)

	return nil
}
