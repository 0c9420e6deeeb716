package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeHours(t *testing.T) {
	assert.Equal(t, "9,13,18", EncodeHours([]int{9, 13, 18}))
	assert.Equal(t, "", EncodeHours(nil))

	assert.Equal(t, []int{9, 13, 18}, DecodeHours("9,13,18"))
	assert.Equal(t, []int{9, 13}, DecodeHours(" 9 , 13 "))
	assert.Nil(t, DecodeHours(""))

	// Junk entries are skipped, not fatal.
	assert.Equal(t, []int{7}, DecodeHours("7,x"))
}

func TestFormatDisplayTime(t *testing.T) {
	at := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tue, Mar 10 at 6:00 PM", FormatDisplayTime(at))
}
