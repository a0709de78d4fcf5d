/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Phase is the lifecycle state of a Session.
type Phase string

const (
	PhaseEmpty  Phase = "EMPTY"
	PhaseActive Phase = "ACTIVE"
)

// Options configures a Session. Zero-valued hooks get sensible defaults.
type Options struct {
	Rows     int
	Cols     int
	HandSize int
	Words    []string

	RetainChat     bool
	MaxChatHistory int

	Shuffle ShuffleFunc
	Now     func() time.Time
	NewID   func() string
}

// DefaultOptions is a 5x8 board, seven-tile hands, the standard vocabulary
// and the last 100 chat lines replayed to joiners.
func DefaultOptions() Options {
	return Options{
		Rows:           5,
		Cols:           8,
		HandSize:       7,
		Words:          Vocabulary(),
		RetainChat:     true,
		MaxChatHistory: 100,
	}
}

// Session is one game room: a deck, a board, the roster and the chat log.
// Every handler runs to completion and returns the messages to send; none of
// them touch the network.
type Session struct {
	opts Options

	id      string
	deck    *Deck
	board   *Board
	players *Registry
	chat    *ChatLog
}

func NewSession(opts Options) *Session {
	if opts.Shuffle == nil {
		opts.Shuffle = frand.Shuffle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Words == nil {
		opts.Words = Vocabulary()
	}

	s := &Session{
		opts:    opts,
		board:   NewBoard(opts.Rows, opts.Cols),
		players: NewRegistry(),
		chat:    NewChatLog(opts.RetainChat, opts.MaxChatHistory),
	}
	s.reset()

	return s
}

// reset starts a fresh game: new id, new shuffled deck, empty board, empty
// roster, no chat history.
func (s *Session) reset() {
	s.id = s.opts.NewID()
	s.deck = NewDeck(s.opts.Words, s.opts.Shuffle)
	s.board.Clear()
	s.players.Reset()
	s.chat.Clear()
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Phase() Phase {
	if s.players.Len() == 0 {
		return PhaseEmpty
	}

	return PhaseActive
}

// PublicState projects everything all players may see.
func (s *Session) PublicState() PublicGameState {
	state := PublicGameState{
		Board: s.board.Snapshot(),
		Players: lo.Map(s.players.Players(), func(p *Player, _ int) PublicPlayer {
			return publicPlayer(p)
		}),
		DeckInfo: DeckInfo{CardsLeft: s.deck.Remaining()},
		GameID:   s.id,
	}

	if cur := s.players.Current(); cur != nil {
		id := cur.ID
		state.CurrentTurnPlayerID = &id
	}

	return state
}

// PrivateState projects one player's hand.
func (s *Session) PrivateState(p *Player) PrivatePlayerInfo {
	cards := make([]Tile, len(p.Hand))
	copy(cards, p.Hand)

	return PrivatePlayerInfo{PlayerID: p.ID, Cards: cards}
}

func publicPlayer(p *Player) PublicPlayer {
	return PublicPlayer{
		PlayerID:  p.ID,
		Username:  p.Profile.Username,
		AvatarURL: p.Profile.AvatarURL,
		IsTurn:    p.IsTurn,
		CardCount: len(p.Hand),
	}
}

// Handle dispatches a decoded action from conn.
func (s *Session) Handle(conn ConnID, a Action) []Delivery {
	switch a := a.(type) {
	case ChatAction:
		return s.Chat(conn, a.Message)
	case ProfileUpdateAction:
		return s.UpdateProfile(conn, a)
	case PlaceCardAction:
		return s.PlaceCard(conn, a)
	case MoveCardAction:
		return s.MoveCard(conn, a)
	case EndTurnAction:
		return s.EndTurn(conn)
	case DrawCardAction:
		return s.DrawCard(conn)
	default:
		log.Warn().Str("conn", string(conn)).Str("type", fmt.Sprintf("%T", a)).Msg("unhandled action")
		return nil
	}
}

// Join registers a player on conn and deals their hand. The error is non-nil
// when the player could not be registered; the returned Deliveries then hold
// only the rejection for conn.
func (s *Session) Join(conn ConnID, playerID string, profile Profile) ([]Delivery, error) {
	if _, ok := s.players.FindByPlayerID(playerID); ok {
		err := fmt.Errorf("cannot join as %q: %w", playerID, ErrAlreadyConnected)
		return s.reject(conn, err), err
	}

	hand := s.deck.Deal(s.opts.HandSize)

	p, err := s.players.Add(conn, playerID, profile, hand)
	if err != nil {
		s.deck.Return(hand...)
		return s.reject(conn, err), err
	}

	log.Info().
		Str("game", s.id).
		Str("player", p.ID).
		Int("cards", len(hand)).
		Bool("turn", p.IsTurn).
		Msg("player joined")

	var out outbox

	out.one(conn, TypeAllProfiles, s.players.Profiles())
	for _, m := range s.chat.History() {
		out.one(conn, TypeChatMessage, m)
	}
	out.one(conn, TypeJoinConfirmed, JoinConfirmedPayload{
		PublicGameState:   s.PublicState(),
		PrivatePlayerInfo: s.PrivateState(p),
	})

	out.others(conn, TypePlayerJoined, PlayerJoinedPayload{Player: publicPlayer(p)})
	out.others(conn, TypeAllProfiles, s.players.Profiles())
	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	out.one(conn, TypeSystemMessage, SystemMessagePayload{Text: welcomeText(p)})
	s.systemLine(&out, p.DisplayName()+" has joined.")

	return out, nil
}

func welcomeText(p *Player) string {
	if p.Profile.Username != "" {
		return "Welcome, " + p.Profile.Username + "! You are connected."
	}

	return "Welcome, " + p.ID + "! Set your profile. You are connected."
}

// Leave removes the player on conn. Their hand goes back into the deck. When
// the last player leaves the session resets. Unknown connections are ignored,
// so calling Leave twice for one connection is harmless.
func (s *Session) Leave(conn ConnID) []Delivery {
	p, ok := s.players.Remove(conn)
	if !ok {
		return nil
	}

	s.deck.Return(p.Hand...)
	p.Hand = nil

	log.Info().
		Str("game", s.id).
		Str("player", p.ID).
		Int("remaining", s.players.Len()).
		Msg("player left")

	if s.players.Len() == 0 {
		old := s.id
		s.reset()
		log.Info().Str("game", old).Str("next", s.id).Msg("all players left, session reset")

		return nil
	}

	left := PlayerLeftPayload{PlayerID: p.ID}
	if cur := s.players.Current(); cur != nil {
		id := cur.ID
		left.NewTurnPlayerID = &id
	}

	var out outbox

	out.all(TypePlayerLeft, left)
	out.all(TypeAllProfiles, s.players.Profiles())
	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})
	s.systemLine(&out, p.DisplayName()+" has left.")

	return out
}

// PlaceCard moves a tile from the turn holder's hand onto an empty cell.
func (s *Session) PlaceCard(conn ConnID, a PlaceCardAction) []Delivery {
	p, err := s.turnHolder(conn)
	if err != nil {
		return s.reject(conn, fmt.Errorf("cannot place card: %w", err))
	}

	tile, idx, ok := lo.FindIndexOf(p.Hand, func(t Tile) bool {
		return t.ID == a.CardID
	})
	if !ok {
		return s.reject(conn, fmt.Errorf("cannot place card %s: %w", a.CardID, ErrCardNotInHand))
	}

	if err := s.board.Place(a.TargetRow, a.TargetCol, tile); err != nil {
		return s.reject(conn, fmt.Errorf("cannot place card %s at %w", a.CardID, err))
	}

	p.Hand = slices.Delete(p.Hand, idx, idx+1)

	log.Debug().
		Str("player", p.ID).
		Str("card", tile.ID).
		Int("row", a.TargetRow).
		Int("col", a.TargetCol).
		Msg("card placed")

	var out outbox

	out.one(conn, TypePrivateState, PrivateStatePayload{PrivatePlayerInfo: s.PrivateState(p)})
	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	return out
}

// MoveCard relocates a tile already on the board. Only the turn holder may
// move tiles, and only onto an empty cell.
func (s *Session) MoveCard(conn ConnID, a MoveCardAction) []Delivery {
	p, err := s.turnHolder(conn)
	if err != nil {
		return s.reject(conn, fmt.Errorf("cannot move card: %w", err))
	}

	if err := s.board.Move(a.FromRow, a.FromCol, a.ToRow, a.ToCol); err != nil {
		return s.reject(conn, fmt.Errorf("cannot move card %w", err))
	}

	log.Debug().
		Str("player", p.ID).
		Int("from_row", a.FromRow).
		Int("from_col", a.FromCol).
		Int("to_row", a.ToRow).
		Int("to_col", a.ToCol).
		Msg("card moved")

	var out outbox

	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	return out
}

// EndTurn passes the turn to the next player in roster order.
func (s *Session) EndTurn(conn ConnID) []Delivery {
	p, err := s.turnHolder(conn)
	if err != nil {
		return s.reject(conn, fmt.Errorf("cannot end turn: %w", err))
	}

	next := s.players.Advance()

	log.Debug().Str("player", p.ID).Str("next", next.ID).Msg("turn ended")

	var out outbox

	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	return out
}

// DrawCard moves the top tile of the deck into the turn holder's hand and
// ends their turn. The draw and the turn change are published together.
func (s *Session) DrawCard(conn ConnID) []Delivery {
	p, err := s.turnHolder(conn)
	if err != nil {
		return s.reject(conn, fmt.Errorf("cannot draw: %w", err))
	}

	tile, err := s.deck.Draw()
	if err != nil {
		return s.reject(conn, fmt.Errorf("cannot draw: %w", err))
	}

	p.Hand = append(p.Hand, tile)
	next := s.players.Advance()

	log.Debug().
		Str("player", p.ID).
		Str("card", tile.ID).
		Int("cards_left", s.deck.Remaining()).
		Str("next", next.ID).
		Msg("card drawn")

	var out outbox

	out.one(conn, TypePrivateState, PrivateStatePayload{PrivatePlayerInfo: s.PrivateState(p)})
	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	return out
}

// Chat fans a chat line out to everyone. The sender is always the player
// bound to conn, whatever the client claimed.
func (s *Session) Chat(conn ConnID, m ChatMessage) []Delivery {
	p, ok := s.players.FindByConnection(conn)
	if !ok {
		log.Warn().Str("conn", string(conn)).Msg("chat from unregistered connection")
		return nil
	}

	if strings.TrimSpace(m.Text) == "" {
		log.Debug().Str("player", p.ID).Msg("dropping empty chat message")
		return nil
	}

	m.Sender = p.ID
	if m.ID == "" {
		m.ID = s.opts.NewID()
	}
	if m.Timestamp == 0 {
		m.Timestamp = s.opts.Now().UnixMilli()
	}

	s.chat.Append(m)

	var out outbox

	out.all(TypeChatMessage, m)

	return out
}

// UpdateProfile changes the username and avatar of the player on conn. An
// update naming any other player is logged and ignored.
func (s *Session) UpdateProfile(conn ConnID, a ProfileUpdateAction) []Delivery {
	p, ok := s.players.FindByConnection(conn)
	if !ok {
		log.Warn().Str("conn", string(conn)).Msg("profile update from unregistered connection")
		return nil
	}

	if a.PlayerID != p.ID {
		log.Warn().
			Str("player", p.ID).
			Str("target", a.PlayerID).
			Msg("player attempted to update another player's profile")
		return nil
	}

	old := p.Profile
	p.Profile = Profile{Username: a.Username, AvatarURL: a.AvatarURL}

	var out outbox

	out.all(TypeAllProfiles, s.players.Profiles())
	out.all(TypePublicState, PublicStatePayload{PublicGameState: s.PublicState()})

	switch {
	case a.Username == "" || a.Username == old.Username:
	case old.Username == "":
		s.systemLine(&out, a.Username+" has set their profile and joined.")
	default:
		s.systemLine(&out, old.Username+" is now known as "+a.Username+".")
	}

	return out
}

// turnHolder resolves conn to its player and checks they hold the turn.
func (s *Session) turnHolder(conn ConnID) (*Player, error) {
	p, ok := s.players.FindByConnection(conn)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !p.IsTurn {
		return nil, ErrNotYourTurn
	}

	return p, nil
}

func (s *Session) systemLine(out *outbox, text string) {
	m := ChatMessage{
		ID:        s.opts.NewID(),
		Sender:    SystemSender,
		Text:      text,
		Timestamp: s.opts.Now().UnixMilli(),
	}
	s.chat.Append(m)
	out.all(TypeChatMessage, m)
}

func (s *Session) reject(conn ConnID, err error) []Delivery {
	level := log.Debug()
	if errors.Is(err, ErrUnknownPlayer) || errors.Is(err, ErrAlreadyConnected) {
		level = log.Warn()
	}
	level.Str("conn", string(conn)).Err(err).Msg("rejected action")

	var out outbox

	out.one(conn, TypeInvalidMove, InvalidMovePayload{Message: err.Error()})

	return out
}
