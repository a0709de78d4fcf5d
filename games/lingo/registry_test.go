package lingo

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func rosterOf(t *testing.T, ids ...string) *Registry {
	t.Helper()

	r := NewRegistry()
	for _, id := range ids {
		if _, err := r.Add(ConnID("conn-"+id), id, Profile{Username: id}, nil); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	return r
}

func turnHolders(r *Registry) []string {
	var ids []string
	for _, p := range r.Players() {
		if p.IsTurn {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

func TestRegistryFirstPlayerGetsTurn(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a", "b", "c")
	is.Equal(turnHolders(r), []string{"a"})
	is.Equal(r.Current().ID, "a")
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a")

	_, err := r.Add("conn-other", "a", Profile{}, nil)
	is.True(errors.Is(err, ErrAlreadyConnected))

	_, err = r.Add("conn-a", "z", Profile{}, nil)
	is.True(errors.Is(err, ErrAlreadyConnected))

	_, err = r.Add("conn-y", "", Profile{}, nil)
	is.True(errors.Is(err, ErrMalformed))

	is.Equal(r.Len(), 1)
}

func TestRegistryLookupsAgree(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a", "b")

	byID, ok := r.FindByPlayerID("b")
	is.True(ok)
	byConn, ok := r.FindByConnection("conn-b")
	is.True(ok)
	is.True(byID == byConn)
	is.Equal(byID.Conn(), ConnID("conn-b"))

	r.Remove("conn-b")
	_, ok = r.FindByPlayerID("b")
	is.True(!ok)
	_, ok = r.FindByConnection("conn-b")
	is.True(!ok)
}

func TestRegistryAdvanceWraps(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a", "b", "c")
	is.Equal(r.Advance().ID, "b")
	is.Equal(r.Advance().ID, "c")
	is.Equal(r.Advance().ID, "a")
	is.Equal(turnHolders(r), []string{"a"})

	is.True(NewRegistry().Advance() == nil)
}

func TestRegistryRemove(t *testing.T) {
	tests := []struct {
		name     string
		advances int
		remove   string
		want     string
	}{
		{name: "holder in middle passes to same index", advances: 1, remove: "b", want: "c"},
		{name: "holder at end wraps to front", advances: 2, remove: "c", want: "a"},
		{name: "holder at front passes to next", advances: 0, remove: "a", want: "b"},
		{name: "earlier player leaving keeps holder", advances: 2, remove: "a", want: "c"},
		{name: "later player leaving keeps holder", advances: 0, remove: "c", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			r := rosterOf(t, "a", "b", "c")
			for range tt.advances {
				r.Advance()
			}

			p, ok := r.Remove(ConnID("conn-" + tt.remove))
			is.True(ok)
			is.Equal(p.ID, tt.remove)
			is.True(!p.IsTurn)
			is.Equal(r.Len(), 2)
			is.Equal(turnHolders(r), []string{tt.want})
			is.Equal(r.Current().ID, tt.want)
		})
	}
}

func TestRegistryRemoveLast(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a")
	_, ok := r.Remove("conn-a")
	is.True(ok)
	is.True(r.Current() == nil)
	is.Equal(r.Len(), 0)

	_, ok = r.Remove("conn-a")
	is.True(!ok)

	p, err := r.Add("conn-b", "b", Profile{}, nil)
	is.NoErr(err)
	is.True(p.IsTurn)
}

func TestRegistryProfiles(t *testing.T) {
	is := is.New(t)

	r := rosterOf(t, "a", "b")
	is.Equal(r.Profiles(), map[string]Profile{
		"a": {Username: "a"},
		"b": {Username: "b"},
	})
}
