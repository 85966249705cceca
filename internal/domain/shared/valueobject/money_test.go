package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("defaults currency when empty", func(t *testing.T) {
		m := NewMoney(decimal.NewFromInt(10), "")
		assert.Equal(t, "SAR", m.Currency())
	})

	t.Run("keeps explicit currency", func(t *testing.T) {
		m := NewMoney(decimal.NewFromInt(10), "USD")
		assert.Equal(t, "USD", m.Currency())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(49.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(51)))
	})

	t.Run("mul keeps precision", func(t *testing.T) {
		m := NewMoneyFromFloat(10.99).Mul(decimal.NewFromInt(3))
		assert.Equal(t, "32.97", m.Amount().StringFixed(2))
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		usd := NewMoney(decimal.NewFromInt(1), "USD")
		_, err := a.Add(usd)
		assert.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	small := NewMoneyFromFloat(5)
	large := NewMoneyFromFloat(10)

	lt, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, small.Equals(NewMoneyFromFloat(5)))
	assert.False(t, small.Equals(large))
}

func TestMoneyRounding(t *testing.T) {
	// 3 x 0.1 style precision traps must not leak into presentation
	m := NewMoneySAR(decimal.RequireFromString("10.005"))
	assert.Equal(t, "10.01", m.Rounded().StringFixed(2))

	m = NewMoneySAR(decimal.RequireFromString("10.004"))
	assert.Equal(t, "10.00", m.Rounded().StringFixed(2))
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.Amount().StringFixed(2))
	assert.Equal(t, "SAR", m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
