/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

// Inbound message types.
const (
	TypeChatMessage   = "CHAT_MESSAGE"
	TypeProfileUpdate = "PROFILE_UPDATE"
	TypePlaceCard     = "PLACE_CARD_REQUEST"
	TypeMoveCard      = "MOVE_CARD_REQUEST"
	TypeEndTurn       = "END_TURN_REQUEST"
	TypeDrawCard      = "DRAW_CARD_REQUEST"
)

// Outbound message types. CHAT_MESSAGE is shared with inbound.
const (
	TypeSystemMessage = "SYSTEM_MESSAGE"
	TypeAllProfiles   = "ALL_PROFILES_UPDATE"
	TypeJoinConfirmed = "JOIN_GAME_CONFIRMED"
	TypePublicState   = "PUBLIC_GAME_STATE_UPDATE"
	TypePrivateState  = "PRIVATE_PLAYER_STATE_UPDATE"
	TypePlayerJoined  = "PLAYER_JOINED_NOTIFICATION"
	TypePlayerLeft    = "PLAYER_LEFT_NOTIFICATION"
	TypeInvalidMove   = "INVALID_MOVE_NOTIFICATION"
)

// Envelope is the frame every message travels in, both directions.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type DeckInfo struct {
	CardsLeft int `json:"cardsLeft"`
}

// PublicPlayer is what everyone may know about a player.
type PublicPlayer struct {
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	IsTurn    bool   `json:"isTurn"`
	CardCount int    `json:"cardCount"`
}

// PublicGameState is broadcast to every connection after each change.
type PublicGameState struct {
	Board               [][]*Tile      `json:"board"`
	Players             []PublicPlayer `json:"players"`
	DeckInfo            DeckInfo       `json:"deckInfo"`
	CurrentTurnPlayerID *string        `json:"currentTurnPlayerId"`
	GameID              string         `json:"gameId"`
}

// PrivatePlayerInfo is a player's own hand, sent only to them.
type PrivatePlayerInfo struct {
	PlayerID string `json:"playerId"`
	Cards    []Tile `json:"cards"`
}

type SystemMessagePayload struct {
	Text string `json:"text"`
}

type JoinConfirmedPayload struct {
	PublicGameState   PublicGameState   `json:"publicGameState"`
	PrivatePlayerInfo PrivatePlayerInfo `json:"privatePlayerInfo"`
}

type PublicStatePayload struct {
	PublicGameState PublicGameState `json:"publicGameState"`
}

type PrivateStatePayload struct {
	PrivatePlayerInfo PrivatePlayerInfo `json:"privatePlayerInfo"`
}

type PlayerJoinedPayload struct {
	Player PublicPlayer `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID        string  `json:"playerId"`
	NewTurnPlayerID *string `json:"newTurnPlayerId"`
}

type InvalidMovePayload struct {
	Message string `json:"message"`
}

// Audience selects which connections a Delivery goes to.
type Audience int

const (
	ToAll Audience = iota
	ToOne
	ToOthers
)

// Delivery is one outbound message and who should get it. For ToOne it goes
// to Conn only; for ToOthers to everyone except Conn.
type Delivery struct {
	Audience Audience
	Conn     ConnID
	Envelope Envelope
}

type outbox []Delivery

func (o *outbox) all(typ string, payload any) {
	*o = append(*o, Delivery{Audience: ToAll, Envelope: Envelope{Type: typ, Payload: payload}})
}

func (o *outbox) one(conn ConnID, typ string, payload any) {
	*o = append(*o, Delivery{Audience: ToOne, Conn: conn, Envelope: Envelope{Type: typ, Payload: payload}})
}

func (o *outbox) others(conn ConnID, typ string, payload any) {
	*o = append(*o, Delivery{Audience: ToOthers, Conn: conn, Envelope: Envelope{Type: typ, Payload: payload}})
}
