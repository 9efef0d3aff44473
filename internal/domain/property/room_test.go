package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	room, err := NewRoom(uuid.New(), "101", valueobject.NewMoneyINRFromFloat(10000), 3)
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
	assert.Equal(t, 3, room.Capacity)
	assert.True(t, room.HasRentConfigured())
}

func TestNewRoom_DefaultsCapacity(t *testing.T) {
	room, err := NewRoom(uuid.New(), "101", valueobject.ZeroINR(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, room.Capacity)
	assert.False(t, room.HasRentConfigured())
}

func TestNewRoom_Validation(t *testing.T) {
	_, err := NewRoom(uuid.Nil, "101", valueobject.ZeroINR(), 1)
	assert.Error(t, err)

	_, err = NewRoom(uuid.New(), "  ", valueobject.ZeroINR(), 1)
	assert.Error(t, err)

	_, err = NewRoom(uuid.New(), "101", valueobject.NewMoneyINRFromFloat(-1), 1)
	assert.Error(t, err)
}

func TestRoom_UpdateRent(t *testing.T) {
	room, err := NewRoom(uuid.New(), "101", valueobject.ZeroINR(), 2)
	require.NoError(t, err)

	require.NoError(t, room.UpdateRent(valueobject.NewMoneyINRFromFloat(12000)))
	assert.True(t, room.HasRentConfigured())
	assert.Equal(t, "12000.00", room.RentPrice.StringFixed(2))

	assert.Error(t, room.UpdateRent(valueobject.NewMoneyINRFromFloat(-5)))
}
