package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4111111111111111"))
	assert.True(t, luhnValid("5500005555555559"))
	assert.True(t, luhnValid("4532015112830366"))
	assert.False(t, luhnValid("4111111111111112"))
	assert.False(t, luhnValid("1234567890123"))
}

func TestContainsPaymentNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bare valid card", "4111111111111111", true},
		{"card in sentence", "my card is 4111111111111111 thanks", true},
		{"vietnamese sentence", "số thẻ của tôi là 4111111111111111", true},
		{"luhn-invalid run", "4111111111111112", false},
		{"too short", "411111111111", false},
		{"too long run skipped", "41111111111111112222", false},
		{"no digits", "no numbers here", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPaymentNumber(tt.text))
		})
	}
}

func TestContainsDigitRun(t *testing.T) {
	assert.True(t, containsDigitRun("4111111111111112"))
	assert.False(t, containsDigitRun("12345"))
	assert.False(t, containsDigitRun("41111111111111112222"))
}
