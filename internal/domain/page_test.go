package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/eld-logbook/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 5}, domain.NewPaginationParams(intPtr(3), intPtr(5)))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 100}, domain.NewPaginationParams(intPtr(0), intPtr(500)))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(intPtr(-2), intPtr(-1)))
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.NewPaginationParams(intPtr(1), intPtr(10)).Offset())
	assert.Equal(t, 20, domain.NewPaginationParams(intPtr(3), intPtr(10)).Offset())
}

func TestPaginationParams_Pages(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(1), intPtr(10))
	assert.Equal(t, 1, p.Pages(0))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 3, p.Pages(25))

	assert.True(t, p.HasNext(25))
	assert.False(t, domain.NewPaginationParams(intPtr(3), intPtr(10)).HasNext(25))
	assert.False(t, p.HasNext(0))
}
