package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotCatalog(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		wantErr bool
	}{
		{name: "default day", labels: DefaultSlotLabels},
		{name: "single slot", labels: []string{"10:00"}},
		{name: "empty", labels: nil, wantErr: true},
		{name: "blank label", labels: []string{"10:00", " "}, wantErr: true},
		{name: "duplicate", labels: []string{"10:00", "11:00", "10:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewSlotCatalog(tt.labels)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCatalog)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.labels), c.Len())
		})
	}
}

func TestSlotCatalog_IndexOfAndWindow(t *testing.T) {
	c, err := NewSlotCatalog(DefaultSlotLabels)
	require.NoError(t, err)

	i, err := c.IndexOf("1:00")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = c.IndexOf("12:00 PM")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	w, err := c.Window("11:00", 2)
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 1, Length: 2}, w)
	assert.Equal(t, []Slot{"11:00", "12:00"}, c.Labels(w))

	w, err = c.Window("5:00", 2)
	require.NoError(t, err)
	assert.Equal(t, []Slot{"5:00", "6:00"}, c.Labels(w))

	_, err = c.Window("6:00", 2)
	assert.ErrorIs(t, err, ErrWindowOutOfRange)

	_, err = c.Window("6:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSlotCatalog_SlotsReturnsCopy(t *testing.T) {
	c, err := NewSlotCatalog([]string{"10:00", "11:00"})
	require.NoError(t, err)

	slots := c.Slots()
	slots[0] = "changed"

	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, Slot("10:00"), first)
}

func TestWindow_Intersects(t *testing.T) {
	a := Window{Start: 1, Length: 2} // 1,2
	assert.True(t, a.Intersects(Window{Start: 2, Length: 1}))
	assert.True(t, a.Intersects(Window{Start: 0, Length: 5}))
	assert.False(t, a.Intersects(Window{Start: 3, Length: 3}))
	assert.False(t, a.Intersects(Window{Start: 0, Length: 1}))
	assert.False(t, a.Intersects(Window{Start: 1, Length: 0}))
}

func TestParseDurationSlots(t *testing.T) {
	valid := map[string]int{"2": 2, "3h": 3, "2 hours": 2, "1 hour": 1, " 4 HRS ": 4}
	for raw, want := range valid {
		got, err := ParseDurationSlots(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "two", "0", "-1", "1.5h"} {
		_, err := ParseDurationSlots(raw)
		assert.ErrorIs(t, err, ErrInvalidDuration, raw)
	}
}
