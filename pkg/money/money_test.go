package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		sum, err := Add("100.00", "50.50")
		require.NoError(t, err)
		assert.Equal(t, "150.50", sum)
	})

	t.Run("Always Two Decimals", func(t *testing.T) {
		sum, err := Add("1", "2")
		require.NoError(t, err)
		assert.Equal(t, "3.00", sum)

		sum, err = Add("0.1", "0.2")
		require.NoError(t, err)
		assert.Equal(t, "0.30", sum)
	})

	t.Run("Rounds Half Away From Zero", func(t *testing.T) {
		sum, err := Add("0.005", "0")
		require.NoError(t, err)
		assert.Equal(t, "0.01", sum)

		sum, err = Add("-0.005", "0")
		require.NoError(t, err)
		assert.Equal(t, "-0.01", sum)
	})

	t.Run("Negative Amounts", func(t *testing.T) {
		sum, err := Add("100.00", "-30.25")
		require.NoError(t, err)
		assert.Equal(t, "69.75", sum)
	})

	t.Run("Zero Identity", func(t *testing.T) {
		sum, err := Add("0.00", "1234.56")
		require.NoError(t, err)
		assert.Equal(t, "1234.56", sum)
	})

	t.Run("Bad Operands", func(t *testing.T) {
		for _, bad := range []string{"", "abc", "12,50", "NaN", "Inf"} {
			_, err := Add(bad, "1.00")
			require.Error(t, err, "operand %q", bad)

			var notDecimal *ErrNotDecimal
			assert.ErrorAs(t, err, &notDecimal)
			assert.Equal(t, bad, notDecimal.Value)
		}
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "150.50", Format(150.5))
	assert.Equal(t, "2.35", Format(2.345001))
	assert.Equal(t, "-7.10", Format(-7.1))
	assert.Equal(t, "1000000.00", Format(1e6))
}
