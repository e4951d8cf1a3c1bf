package amount_test

import (
	"math/big"
	"testing"

	"disperse_back/pkg/amount"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint256(t *testing.T) {
	v, err := amount.ParseUint256("0")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	v, err = amount.ParseUint256("1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	v, err = amount.ParseUint256(amount.MaxUint256.String())
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(amount.MaxUint256))
}

func TestParseUint256Rejects(t *testing.T) {
	for _, in := range []string{"", "-1", "+1", " 1", "1 ", "0x10", "1.5", "1e18", "abc"} {
		_, err := amount.ParseUint256(in)
		assert.True(t, errors.Is(err, amount.ErrInvalidNumber), "input %q: %v", in, err)
	}

	tooBig := new(big.Int).Add(amount.MaxUint256, big.NewInt(1)).String()
	_, err := amount.ParseUint256(tooBig)
	assert.True(t, errors.Is(err, amount.ErrOverflow))
}

func TestParseUint256List(t *testing.T) {
	vs, err := amount.ParseUint256List([]string{"1", "2", "3"})
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, "3", vs[2].String())

	_, err = amount.ParseUint256List([]string{"1", "x"})
	assert.Error(t, err)

	vs, err = amount.ParseUint256List(nil)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestParsePercents(t *testing.T) {
	v, err := amount.ParsePercents(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	s := "25"
	v, err = amount.ParsePercents(&s)
	require.NoError(t, err)
	assert.Equal(t, int64(25), v.Int64())

	bad := "25%"
	_, err = amount.ParsePercents(&bad)
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	total, err := amount.Sum([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total.Int64())

	total, err = amount.Sum(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total.Sign())

	_, err = amount.Sum([]*big.Int{amount.MaxUint256, big.NewInt(1)})
	assert.Equal(t, amount.ErrOverflow, err)

	total, err = amount.Sum([]*big.Int{amount.MaxUint256, big.NewInt(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, total.Cmp(amount.MaxUint256))
}
