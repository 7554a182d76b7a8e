package postgres

import (
	"context"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysetPredicate(t *testing.T) {
	after := &domain.Cursor{
		SortValue: time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC),
		ID:        "b9a4c3d0-0000-4000-8000-000000000001",
	}

	tests := []struct {
		name     string
		after    *domain.Cursor
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "first page",
			after:    nil,
			wantSQL:  "(email = ?)",
			wantArgs: []interface{}{"jane@example.com"},
		},
		{
			name:     "after cursor",
			after:    after,
			wantSQL:  "(email = ? AND (created_at, id) < (?, ?))",
			wantArgs: []interface{}{"jane@example.com", after.SortValue, after.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := keysetPredicate("email", "jane@example.com", "created_at", "id", tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCollectionRepository_UnknownField(t *testing.T) {
	repo := NewPaymentCollectionRepository(nil)

	_, err := repo.Find(context.Background(), pagination.Query{
		Collection:  "payments",
		FilterField: "referredBy",
		FilterValue: "x",
		SortField:   "createdAt",
	}, nil, pagination.PageSize)
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = repo.Count(context.Background(), pagination.Query{
		Collection:  "payments",
		FilterField: "email",
		FilterValue: "x",
		SortField:   "amount",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	// only fields some list screen filters or sorts on are mapped
	for _, field := range []string{"type", "paymentMethod", "role"} {
		_, err = repo.Count(context.Background(), pagination.Query{
			Collection:  "payments",
			FilterField: field,
			FilterValue: "x",
			SortField:   "createdAt",
		})
		assert.ErrorIs(t, err, domain.ErrUnknownField, field)
	}

	_, err = NewUserCollectionRepository(nil).Count(context.Background(), pagination.Query{
		Collection:  "users",
		FilterField: "role",
		FilterValue: domain.RoleAdmin,
		SortField:   "createdAt",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}
