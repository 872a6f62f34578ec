package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Time
		expected int
	}{
		{"equal", NewTime(8, 15), NewTime(8, 15), 0},
		{"earlier hour", NewTime(7, 59), NewTime(8, 0), -1},
		{"later hour", NewTime(9, 0), NewTime(8, 59), 1},
		{"same hour earlier minute", NewTime(8, 14), NewTime(8, 15), -1},
		{"same hour later minute", NewTime(8, 16), NewTime(8, 15), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.expected, tt.b.Compare(tt.a))
		})
	}
}

func TestTimeFromMinutes(t *testing.T) {
	tests := []struct {
		minutes  int
		expected Time
	}{
		{0, NewTime(0, 0)},
		{480, NewTime(8, 0)},
		{460, NewTime(7, 40)},
		{1683, NewTime(28, 3)},
		{-30, NewTime(0, -30)},
		{-90, NewTime(-1, -30)},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeFromMinutes(tt.minutes))
		})
	}
}

func TestTime_Add(t *testing.T) {
	assert.Equal(t, NewTime(0, 0), NewTime(0, 0).Add(NewTime(0, 0)))
	assert.Equal(t, NewTime(28, 3), NewTime(15, 28).Add(NewTime(12, 35)))
	assert.Equal(t, NewTime(29, 35), NewTime(28, 0).Add(NewTime(1, 35)))
	assert.Equal(t, NewTime(14, 20), Sum(NewTime(7, 40), NewTime(6, 40)))
	assert.Equal(t, NewTime(0, 0), Sum())
}

func TestTime_Sub(t *testing.T) {
	assert.Equal(t, 255, NewTime(12, 30).Sub(NewTime(8, 15)))
	assert.Equal(t, -60, NewTime(8, 0).Sub(NewTime(9, 0)))
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "08:05", NewTime(8, 5).String())
	assert.Equal(t, "28:03", NewTime(28, 3).String())
	assert.Equal(t, "-1:-30", NewTime(-1, -30).String())
}

func TestTimeOf(t *testing.T) {
	assert.Equal(t, NewTime(15, 30), TimeOf(time.Date(2015, 6, 24, 15, 30, 59, 0, time.Local)))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input       string
		expected    Time
		expectError bool
	}{
		{"08:30", NewTime(8, 30), false},
		{"8:05", NewTime(8, 5), false},
		{"23:59", NewTime(23, 59), false},
		{"00:00", NewTime(0, 0), false},
		{"24:00", Time{}, true},
		{"12:60", Time{}, true},
		{"-1:00", Time{}, true},
		{"noon", Time{}, true},
		{"12", Time{}, true},
		{"12:30pm", Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
