package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spok95/geosites/internal/domain/users"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		owner int64
		want  bool
	}{
		{"owner", Actor{UserID: 7, Role: users.RoleUser}, 7, true},
		{"stranger", Actor{UserID: 9, Role: users.RoleUser}, 7, false},
		{"admin", Actor{UserID: 2, Role: users.RoleAdmin}, 7, true},
		{"admin owns", Actor{UserID: 7, Role: users.RoleAdmin}, 7, true},
		{"anonymous", Actor{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.actor, tt.owner))
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithActor(context.Background(), Actor{UserID: 3, Role: users.RoleAdmin})
	a, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(3), a.UserID)
	assert.True(t, a.IsAdmin())
}
