package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/songhub/internal/shared"
)

func TestSong(t *testing.T) {
	valid := Song{Name: "Hello", Genre: "Pop", Language: "English", Keyword: "Joy"}

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			song    Song
			wantErr bool
			message string
		}{
			{name: "all fields", song: valid},
			{name: "missing name", song: Song{Genre: "Pop", Language: "English", Keyword: "Joy"}, wantErr: true, message: MsgFieldsRequired},
			{name: "whitespace name", song: Song{Name: "  ", Genre: "Pop", Language: "English", Keyword: "Joy"}, wantErr: true, message: MsgFieldsRequired},
			{name: "missing keyword", song: Song{Name: "Hello", Genre: "Pop", Language: "English"}, wantErr: true, message: MsgFieldsRequired},
			{name: "unknown genre", song: Song{Name: "Hello", Genre: "Polka", Language: "English", Keyword: "Joy"}, wantErr: true, message: `Unknown genre "Polka".`},
			{name: "unknown language", song: Song{Name: "Hello", Genre: "Pop", Language: "Klingon", Keyword: "Joy"}, wantErr: true, message: `Unknown language "Klingon".`},
			{name: "unknown keyword", song: Song{Name: "Hello", Genre: "Pop", Language: "English", Keyword: "Anger"}, wantErr: true, message: `Unknown keyword "Anger".`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.song.Validate()
				if !tt.wantErr {
					if err != nil {
						t.Fatalf("expected no error, got %v", err)
					}
					return
				}

				if !errors.Is(err, shared.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}

				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if verr.Message != tt.message {
					t.Errorf("expected message %q, got %q", tt.message, verr.Message)
				}
			})
		}
	})

	t.Run("JSON Field Names", func(t *testing.T) {
		data, err := json.Marshal(valid)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := `{"songname":"Hello","songtype":"Pop","language":"English","keyword":"Joy"}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("Decodes Server Record", func(t *testing.T) {
		body := `{"id":7,"user_id":3,"songname":"Hello","songtype":"Pop","language":"English","keyword":"Joy","added_at":"2024-01-01T00:00:00"}`

		var song Song
		if err := json.Unmarshal([]byte(body), &song); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if song.ID != 7 || song.UserID != "3" || song.AddedAt == "" {
			t.Errorf("server fields not carried: %+v", song)
		}
	})
}

func TestUserID(t *testing.T) {
	tests := []struct {
		input   string
		want    UserID
		wantErr bool
	}{
		{input: `42`, want: "42"},
		{input: `"42"`, want: "42"},
		{input: `null`, want: ""},
		{input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got UserID
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCredential(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
		want bool
	}{
		{name: "both set", cred: Credential{Token: "t", UserID: "1"}, want: true},
		{name: "missing token", cred: Credential{UserID: "1"}},
		{name: "missing user id", cred: Credential{Token: "t"}},
		{name: "empty", cred: Credential{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cred.Present(); got != tt.want {
				t.Errorf("Present() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("From Login Result", func(t *testing.T) {
		result := LoginResult{AccessToken: "abc", TokenType: "bearer", UserID: "9"}
		cred := result.Credential()
		if cred.Token != "abc" || cred.UserID != "9" {
			t.Errorf("unexpected credential %+v", cred)
		}
	})
}

func TestForms(t *testing.T) {
	t.Run("Login", func(t *testing.T) {
		if err := (LoginRequest{Email: "a@b.c"}).Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if err := (LoginRequest{Email: "a@b.c", Password: "pw"}).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Register", func(t *testing.T) {
		if err := (RegisterRequest{Email: "a@b.c", Password: "pw"}).Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if err := (RegisterRequest{Email: "a@b.c", Username: "u", Password: "pw"}).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
