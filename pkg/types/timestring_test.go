package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "08:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "missing leading zero", input: "8:30", wantErr: true},
		{name: "no colon", input: "0830", wantErr: true},
		{name: "hours out of range", input: "25:00", wantErr: true},
		{name: "minutes out of range", input: "12:60", wantErr: true},
		{name: "24:00 rejected as input", input: "24:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "negative hours", input: "-1:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		delta   int
		want    string
		wantErr bool
	}{
		{name: "within hour", start: "08:00", delta: 30, want: "08:30"},
		{name: "across hour", start: "08:45", delta: 30, want: "09:15"},
		{name: "exactly midnight", start: "23:30", delta: 30, want: "24:00"},
		{name: "past midnight", start: "23:30", delta: 31, wantErr: true},
		{name: "negative to zero", start: "00:30", delta: -30, want: "00:00"},
		{name: "negative out of range", start: "00:30", delta: -31, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := TimeString(tt.start)
			got, err := ts.AddMinutes(tt.delta)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("08:30"))
	assert.False(t, TimeString("08:30").IsBefore("08:30"))
	assert.True(t, TimeString("09:00").IsAfter("08:59"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))

	// лексикографический порядок совпадает с временным благодаря ведущим нулям
	assert.True(t, TimeString("09:05").IsBefore("10:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 9, 6, 14, 7, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:07"), NewTimeString(moment))
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
