package messenger

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestVerifyChallenge(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		token       string
		verifyToken string
		challenge   string
		want        int
		wantOK      bool
	}{
		{
			name:        "valid request",
			mode:        "subscribe",
			token:       "secreto",
			verifyToken: "secreto",
			challenge:   "1158201444",
			want:        1158201444,
			wantOK:      true,
		},
		{
			name:        "wrong mode",
			mode:        "unsubscribe",
			token:       "secreto",
			verifyToken: "secreto",
			challenge:   "42",
			wantOK:      false,
		},
		{
			name:        "token mismatch",
			mode:        "subscribe",
			token:       "otro",
			verifyToken: "secreto",
			challenge:   "42",
			wantOK:      false,
		},
		{
			name:        "empty configured token rejects everything",
			mode:        "subscribe",
			token:       "",
			verifyToken: "",
			challenge:   "42",
			wantOK:      false,
		},
		{
			name:        "non numeric challenge",
			mode:        "subscribe",
			token:       "secreto",
			verifyToken: "secreto",
			challenge:   "abc",
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VerifyChallenge(tt.mode, tt.token, tt.verifyToken, tt.challenge)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("challenge = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParsePayload(t *testing.T) {
	raw := `{
		"object": "page",
		"entry": [
			{"id": "1", "messaging": [
				{"sender": {"id": "u1"}, "message": {"text": "hola"}},
				{"sender": {"id": "u2"}, "message": {}},
				{"sender": {}, "message": {"text": "sin remitente"}}
			]},
			{"id": "2", "messaging": [
				{"sender": {"id": "u3"}, "message": {"text": "precio del tubo"}}
			]}
		]
	}`

	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	got := ParsePayload(payload)
	want := []IncomingMessage{
		{SenderID: "u1", Text: "hola"},
		{SenderID: "u3", Text: "precio del tubo"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePayload() = %v, want %v", got, want)
	}
}

func TestParsePayloadEmpty(t *testing.T) {
	if got := ParsePayload(WebhookPayload{}); got != nil {
		t.Errorf("ParsePayload() = %v, want nil", got)
	}
}
