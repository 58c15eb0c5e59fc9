package setting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_KnownSettingUsesRegistry(t *testing.T) {
	s, err := New(CategoryMailer, KeyMailerTicketType, KindString, "ignored")
	require.NoError(t, err)
	assert.Equal(t, KindInt, s.Kind())
	assert.Equal(t, "Ticket type assigned to imported mail", s.Description())
	assert.False(t, s.IsSet())

	v, err := s.Int()
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "k", KindString, "")
	assert.Error(t, err)
	_, err = New("c", "  ", KindString, "")
	assert.Error(t, err)
	_, err = New("c", "k", Kind("blob"), "")
	assert.True(t, errors.Is(err, ErrInvalidValueType))
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		in      any
		want    any
		wantErr bool
	}{
		{"int from json number", KindInt, float64(7), 7, false},
		{"int rejects fraction", KindInt, 1.5, nil, true},
		{"int rejects string", KindInt, "7", nil, true},
		{"bool", KindBool, true, true, false},
		{"bool rejects number", KindBool, float64(1), nil, true},
		{"string", KindString, "imap.example.com", "imap.example.com", false},
		{"json list", KindJSON, []any{"red", "blue"}, []any{"red", "blue"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New("custom", "entry", tt.kind, "")
			require.NoError(t, err)

			err = s.Assign(tt.in, 3)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValueType)
				assert.Equal(t, 1, s.Version())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Value())
			assert.Equal(t, uint(3), s.UpdatedBy())
			assert.Equal(t, 2, s.Version())
		})
	}
}

func TestValue_FallsBackToRaw(t *testing.T) {
	now := time.Now().UTC()
	s := Reconstruct(1, "ui", "limit", KindInt, "lots", "", 0, 1, now, now)
	assert.Equal(t, "lots", s.Value())
	_, err := s.Int()
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindBool, KindOf(false))
	assert.Equal(t, KindString, KindOf("x"))
	assert.Equal(t, KindInt, KindOf(float64(4)))
	assert.Equal(t, KindJSON, KindOf(4.5))
	assert.Equal(t, KindJSON, KindOf(map[string]any{"a": 1}))
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive("check:password"))
	assert.True(t, IsSensitive("API_KEY"))
	assert.True(t, IsSensitive("webhook_secret"))
	assert.False(t, IsSensitive("check:host"))
}
