package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrips(t *testing.T) {
	multiplier := MultiplierFor(7)
	for start := 0; start < 20; start++ {
		for room := 0; room < 7; room++ {
			gene := encode(start, room, multiplier)
			gotStart, gotRoom := decode(gene, multiplier, 7)
			assert.Equal(t, start, gotStart)
			assert.Equal(t, room, gotRoom)
		}
	}
}

func TestMultiplierForExceedsEveryValidRoomIndex(t *testing.T) {
	cases := []struct {
		numRooms int
		want     int
	}{
		{0, 10},
		{1, 10},
		{9, 10},
		{10, 10},
		{99, 100},
		{100, 100},
	}
	for _, c := range cases {
		got := MultiplierFor(c.numRooms)
		assert.Equal(t, c.want, got, "numRooms=%d", c.numRooms)
		assert.Greater(t, got, c.numRooms-1)
	}
}

func TestDecodeClampsOutOfRangeRoomIndexIntoBounds(t *testing.T) {
	multiplier := MultiplierFor(3)
	gene := encode(5, 9, multiplier) // 9 is out of range for numRooms=3
	_, room := decode(gene, multiplier, 3)
	assert.GreaterOrEqual(t, room, 0)
	assert.Less(t, room, 3)
}

func TestDecodeWithNoRoomsReturnsSentinelRoomIndex(t *testing.T) {
	multiplier := MultiplierFor(0)
	gene := encode(4, 0, multiplier)
	start, room := decode(gene, multiplier, 0)
	assert.Equal(t, 4, start)
	assert.Equal(t, -1, room)
}
