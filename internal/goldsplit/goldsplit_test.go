package goldsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Coins
	}{
		{"full party", Request{Sale: Coins{Gold: 1000}, Stamps: 2, Members: 8}, Coins{123, 42, 60}},
		{"mixed coins", Request{Sale: Coins{12, 34, 56}, Members: 3}, Coins{4, 10, 69}},
		{"single member keeps everything", Request{Sale: Coins{Gold: 100, Silver: 5}, Stamps: 1, Members: 1}, Coins{95, 5, 0}},
		{"stamps eat the whole sale", Request{Sale: Coins{Gold: 10}, Stamps: 2, Members: 4}, Coins{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Share)
		})
	}
}

func TestSplitRejects(t *testing.T) {
	_, err := Split(Request{Sale: Coins{Gold: 4}, Stamps: 1, Members: 2})
	assert.ErrorIs(t, err, ErrStampsExceed)
	assert.ErrorContains(t, err, "short by 10000 copper")

	_, err = Split(Request{Sale: Coins{Gold: 4}, Members: 0})
	assert.ErrorIs(t, err, ErrNoMembers)

	_, err = Split(Request{Sale: Coins{Gold: -1}, Members: 2})
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestSplitNeverExceedsPool(t *testing.T) {
	for members := 1; members <= 16; members++ {
		r, err := Split(Request{Sale: Coins{Gold: 777, Silver: 77, Copper: 7}, Stamps: 3, Members: members})
		require.NoError(t, err)
		assert.LessOrEqual(t, r.Share.Total()*int64(members), r.Pool, "members=%d", members)
	}
}

func TestCoinsString(t *testing.T) {
	assert.Equal(t, "12,345g 6s 7c", Coins{12345, 6, 7}.String())
	assert.Equal(t, Coins{1, 2, 3}, Coins{Copper: 10203}.Normalize())
}
