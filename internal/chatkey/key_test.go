package chatkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminalchat/terminalchat/internal/common"
)

func TestCanonical_OrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"already sorted", "alice", "bob", "alice_bob"},
		{"reversed", "bob", "alice", "alice_bob"},
		{"case sensitive, uppercase sorts first", "alice", "Bob", "Bob_alice"},
		{"underscore in name keeps positional join", "a_b", "c", "a_b_c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			swapped, err := Canonical(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, got, swapped)
		})
	}
}

func TestCanonical_SelfConversationRejected(t *testing.T) {
	_, err := Canonical("alice", "alice")
	assert.ErrorIs(t, err, common.ErrInvalidConversation)
}
