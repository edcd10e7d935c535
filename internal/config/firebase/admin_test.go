package firebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa911/teamchat/internal/session"
)

func TestIdentityFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		want   session.Identity
	}{
		{
			name:   "email and name",
			claims: map[string]interface{}{"email": "alice@example.com", "name": "Alice"},
			want:   session.Identity{UID: "u1", Email: "alice@example.com", DisplayName: "Alice"},
		},
		{
			name:   "anonymous",
			claims: map[string]interface{}{},
			want:   session.Identity{UID: "u1"},
		},
		{
			name:   "wrong claim types",
			claims: map[string]interface{}{"email": 1, "name": true},
			want:   session.Identity{UID: "u1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *IdentityFromClaims("u1", tt.claims))
		})
	}
}

func TestVerifyWithoutClient(t *testing.T) {
	_, err := TokenVerifier{}.Verify(context.Background(), "token")
	assert.Error(t, err)
}
