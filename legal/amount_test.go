package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  int64
	}{
		{"millions", "долг 1 млн рублей", 1_000_000},
		{"millions spelled out", "Долг 3 миллиона", 3_000_000},
		{"thousands", "долг 500 тысяч", 500_000},
		{"short thousands", "задолженность 40 тыс", 40_000},
		{"rubles", "долг 300000 рублей", 300_000},
		{"rubles with zeros are not rescaled", "банкротство, долг 2000000 рублей", 2_000_000},
		{"range takes the lower bound", "долг от 100 до 200", 100},
		{"bare thousand suffix", "долг 50000", 50_000},
		{"k suffix is not scaled", "долг 50к", 50},
		{"over", "долг свыше 70", 70},
		{"more than", "долг более 15", 15},
	}
	for _, tc := range cases {
		t.Run("Should extract "+tc.name, func(t *testing.T) {
			got, ok := ExtractAmount(tc.query)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("Should prefer pattern order over position in text", func(t *testing.T) {
		got, ok := ExtractAmount("сначала 200 тысяч, потом 3 млн")
		assert.True(t, ok)
		assert.Equal(t, int64(3_000_000), got)
	})

	t.Run("Should return none without a numeric pattern", func(t *testing.T) {
		_, ok := ExtractAmount("долг перед банком")
		assert.False(t, ok)
		_, ok = ExtractAmount("")
		assert.False(t, ok)
	})

	t.Run("Should skip captures that do not fit an integer", func(t *testing.T) {
		_, ok := ExtractAmount("99999999999999999999 рублей")
		assert.False(t, ok)
	})
}
