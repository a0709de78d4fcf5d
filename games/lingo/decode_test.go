package lingo

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Action
		wantErr error
	}{
		{
			name: "chat",
			in:   `{"type":"CHAT_MESSAGE","payload":{"id":"m1","sender":"someone-else","text":"hi","timestamp":5}}`,
			want: ChatAction{Message: ChatMessage{ID: "m1", Sender: "someone-else", Text: "hi", Timestamp: 5}},
		},
		{
			name: "profile",
			in:   `{"type":"PROFILE_UPDATE","payload":{"playerId":"p1","username":"Ann","avatarUrl":"/a.png"}}`,
			want: ProfileUpdateAction{PlayerID: "p1", Username: "Ann", AvatarURL: "/a.png"},
		},
		{
			name: "place card",
			in:   `{"type":"PLACE_CARD_REQUEST","payload":{"cardId":"deck-3","targetRow":0,"targetCol":7}}`,
			want: PlaceCardAction{CardID: "deck-3", TargetRow: 0, TargetCol: 7},
		},
		{
			name: "move card",
			in:   `{"type":"MOVE_CARD_REQUEST","payload":{"fromRow":0,"fromCol":1,"toRow":2,"toCol":3}}`,
			want: MoveCardAction{FromRow: 0, FromCol: 1, ToRow: 2, ToCol: 3},
		},
		{
			name: "end turn with empty payload",
			in:   `{"type":"END_TURN_REQUEST","payload":{}}`,
			want: EndTurnAction{},
		},
		{
			name: "draw without payload",
			in:   `{"type":"DRAW_CARD_REQUEST"}`,
			want: DrawCardAction{},
		},
		{name: "not json", in: `hello`, wantErr: ErrMalformed},
		{name: "truncated", in: `{"type":"CHAT_MESSAGE","payload":{`, wantErr: ErrMalformed},
		{name: "unknown type", in: `{"type":"FLIP_TABLE","payload":{}}`, wantErr: ErrUnknownType},
		{name: "missing type", in: `{"payload":{}}`, wantErr: ErrUnknownType},
		{name: "chat without payload", in: `{"type":"CHAT_MESSAGE"}`, wantErr: ErrMalformed},
		{name: "place card missing row", in: `{"type":"PLACE_CARD_REQUEST","payload":{"cardId":"deck-1","targetCol":1}}`, wantErr: ErrMalformed},
		{name: "place card missing card", in: `{"type":"PLACE_CARD_REQUEST","payload":{"targetRow":1,"targetCol":1}}`, wantErr: ErrMalformed},
		{name: "place card wrong types", in: `{"type":"PLACE_CARD_REQUEST","payload":{"cardId":"deck-1","targetRow":"a","targetCol":1}}`, wantErr: ErrMalformed},
		{name: "move card missing target", in: `{"type":"MOVE_CARD_REQUEST","payload":{"fromRow":0,"fromCol":1}}`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			got, err := DecodeAction([]byte(tt.in))
			if tt.wantErr != nil {
				is.True(errors.Is(err, tt.wantErr))
				is.True(got == nil)
				return
			}

			is.NoErr(err)
			is.Equal(got, tt.want)
		})
	}
}
