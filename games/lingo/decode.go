/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import (
	"encoding/json"
	"fmt"
)

// Action is a decoded client request.
type Action interface {
	action() string
}

// ChatAction carries a client chat line. Sender is ignored and restamped.
type ChatAction struct {
	Message ChatMessage
}

type ProfileUpdateAction struct {
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type PlaceCardAction struct {
	CardID    string `json:"cardId"`
	TargetRow int    `json:"targetRow"`
	TargetCol int    `json:"targetCol"`
}

type MoveCardAction struct {
	FromRow int `json:"fromRow"`
	FromCol int `json:"fromCol"`
	ToRow   int `json:"toRow"`
	ToCol   int `json:"toCol"`
}

type EndTurnAction struct{}

type DrawCardAction struct{}

func (ChatAction) action() string          { return TypeChatMessage }
func (ProfileUpdateAction) action() string { return TypeProfileUpdate }
func (PlaceCardAction) action() string     { return TypePlaceCard }
func (MoveCardAction) action() string      { return TypeMoveCard }
func (EndTurnAction) action() string       { return TypeEndTurn }
func (DrawCardAction) action() string      { return TypeDrawCard }

type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses one text frame. Errors wrap ErrMalformed or
// ErrUnknownType.
func DecodeAction(data []byte) (Action, error) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch msg.Type {
	case TypeChatMessage:
		var m ChatMessage
		if err := decodePayload(msg, &m); err != nil {
			return nil, err
		}
		return ChatAction{Message: m}, nil
	case TypeProfileUpdate:
		var a ProfileUpdateAction
		if err := decodePayload(msg, &a); err != nil {
			return nil, err
		}
		return a, nil
	case TypePlaceCard:
		var p struct {
			CardID    string `json:"cardId"`
			TargetRow *int   `json:"targetRow"`
			TargetCol *int   `json:"targetCol"`
		}
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		if p.CardID == "" || p.TargetRow == nil || p.TargetCol == nil {
			return nil, fmt.Errorf("%w: %s needs cardId, targetRow and targetCol", ErrMalformed, msg.Type)
		}
		return PlaceCardAction{CardID: p.CardID, TargetRow: *p.TargetRow, TargetCol: *p.TargetCol}, nil
	case TypeMoveCard:
		var p struct {
			FromRow *int `json:"fromRow"`
			FromCol *int `json:"fromCol"`
			ToRow   *int `json:"toRow"`
			ToCol   *int `json:"toCol"`
		}
		if err := decodePayload(msg, &p); err != nil {
			return nil, err
		}
		if p.FromRow == nil || p.FromCol == nil || p.ToRow == nil || p.ToCol == nil {
			return nil, fmt.Errorf("%w: %s needs fromRow, fromCol, toRow and toCol", ErrMalformed, msg.Type)
		}
		return MoveCardAction{FromRow: *p.FromRow, FromCol: *p.FromCol, ToRow: *p.ToRow, ToCol: *p.ToCol}, nil
	case TypeEndTurn:
		return EndTurnAction{}, nil
	case TypeDrawCard:
		return DrawCardAction{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
}

func decodePayload(msg inbound, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: %s has no payload", ErrMalformed, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %s payload: %v", ErrMalformed, msg.Type, err)
	}

	return nil
}
