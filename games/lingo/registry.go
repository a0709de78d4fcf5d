/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ConnID identifies one live connection. The transport assigns it.
type ConnID string

// Profile is the self-chosen public identity of a player.
type Profile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// Player is a connected participant.
type Player struct {
	ID      string
	Profile Profile
	Hand    []Tile
	IsTurn  bool

	conn ConnID
}

// DisplayName is the username, or the player id when no username is set.
func (p *Player) DisplayName() string {
	if p.Profile.Username != "" {
		return p.Profile.Username
	}

	return p.ID
}

// Conn returns the connection the player is bound to.
func (p *Player) Conn() ConnID {
	return p.conn
}

// Registry maps live connections to players in both directions and keeps
// the roster order that turns rotate through.
type Registry struct {
	roster []*Player
	byConn map[ConnID]*Player
	byID   map[string]*Player

	// index into roster of the player holding the turn, -1 when empty
	turn int
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()

	return r
}

// Reset drops every player.
func (r *Registry) Reset() {
	r.roster = nil
	r.byConn = make(map[ConnID]*Player)
	r.byID = make(map[string]*Player)
	r.turn = -1
}

// Add appends a player holding hand to the roster. The first player in an
// empty roster receives the turn.
func (r *Registry) Add(conn ConnID, playerID string, profile Profile, hand []Tile) (*Player, error) {
	if playerID == "" || conn == "" {
		return nil, fmt.Errorf("register player: %w", ErrMalformed)
	}
	if _, ok := r.byID[playerID]; ok {
		return nil, fmt.Errorf("register %q: %w", playerID, ErrAlreadyConnected)
	}
	if _, ok := r.byConn[conn]; ok {
		return nil, fmt.Errorf("register %q: %w", playerID, ErrAlreadyConnected)
	}

	p := &Player{
		ID:      playerID,
		Profile: profile,
		Hand:    hand,
		conn:    conn,
	}

	r.roster = append(r.roster, p)
	r.byConn[conn] = p
	r.byID[playerID] = p

	if r.turn < 0 {
		r.turn = len(r.roster) - 1
		p.IsTurn = true
	}

	return p, nil
}

// Remove drops the player bound to conn. If they held the turn it passes to
// whoever now occupies their roster index, wrapping around.
func (r *Registry) Remove(conn ConnID) (*Player, bool) {
	p, ok := r.byConn[conn]
	if !ok {
		return nil, false
	}

	idx := slices.Index(r.roster, p)
	r.roster = slices.Delete(r.roster, idx, idx+1)
	delete(r.byConn, conn)
	delete(r.byID, p.ID)

	switch {
	case len(r.roster) == 0:
		r.turn = -1
	case p.IsTurn:
		r.turn = idx % len(r.roster)
		r.roster[r.turn].IsTurn = true
	case idx < r.turn:
		r.turn--
	}

	p.IsTurn = false

	return p, true
}

// Advance passes the turn to the next player in roster order and returns
// them. It returns nil when the roster is empty.
func (r *Registry) Advance() *Player {
	if r.turn < 0 {
		return nil
	}

	r.roster[r.turn].IsTurn = false
	r.turn = (r.turn + 1) % len(r.roster)
	r.roster[r.turn].IsTurn = true

	return r.roster[r.turn]
}

// Current returns the player holding the turn, or nil.
func (r *Registry) Current() *Player {
	if r.turn < 0 {
		return nil
	}

	return r.roster[r.turn]
}

func (r *Registry) FindByPlayerID(id string) (*Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *Registry) FindByConnection(conn ConnID) (*Player, bool) {
	p, ok := r.byConn[conn]
	return p, ok
}

// Players returns the roster in turn order.
func (r *Registry) Players() []*Player {
	return slices.Clone(r.roster)
}

func (r *Registry) Len() int {
	return len(r.roster)
}

// Profiles maps each connected player id to their profile.
func (r *Registry) Profiles() map[string]Profile {
	return lo.SliceToMap(r.roster, func(p *Player) (string, Profile) {
		return p.ID, p.Profile
	})
}
