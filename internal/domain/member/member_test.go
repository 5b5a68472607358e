package member

import (
	"testing"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Valid(t *testing.T) {
	addr := address.New("Seoul", "Teheran-ro 1", "06000")

	m, err := New("kim", "kim@example.com", addr)

	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "kim", m.Name)
	assert.Equal(t, addr, m.Address)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestNew_EmptyName(t *testing.T) {
	m, err := New("   ", "", address.Address{})

	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Nil(t, m)
}

func TestNew_EmailOptional(t *testing.T) {
	m, err := New("kim", "", address.Address{})

	require.NoError(t, err)
	assert.Empty(t, m.Email)
}
