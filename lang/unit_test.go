package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_RoundTrip(t *testing.T) {
	for _, u := range Units() {
		t.Run(u.String(), func(t *testing.T) {
			got, err := ParseUnit(u.String())
			require.NoError(t, err)
			assert.Equal(t, u, got)
		})
	}
}

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "%", Percent.String())
	assert.Equal(t, "x", Rep.String())
	assert.Equal(t, "s", Time(Second).String())
	assert.Equal(t, "m", Time(Minute).String())
}

func TestUnit_Time(t *testing.T) {
	tu, ok := Time(Minute).Time()
	require.True(t, ok)
	assert.Equal(t, Minute, tu)

	_, ok = Percent.Time()
	assert.False(t, ok)

	_, ok = Rep.Time()
	assert.False(t, ok)
}

func TestParseUnit_Bad(t *testing.T) {
	for _, s := range []string{"", "h", "ms", "S", "%%", "sec"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseUnit(s)
			assert.ErrorIs(t, err, ErrBadUnit)
		})
	}
}

func TestQuantity_String(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{NewQuantity(30, Time(Second)), "30s"},
		{NewQuantity(1.5, Time(Minute)), "1.5m"},
		{NewQuantity(50, Percent), "50%"},
		{NewQuantity(3, Rep), "3x"},
		{NewQuantity(0.125, Rep), "0.125x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())

			// Display form scans back to the same quantity.
			tokens, err := Scan(tt.want, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.q, tokens[0].Literal)
		})
	}
}

func TestQuantity_NotNormalized(t *testing.T) {
	assert.NotEqual(t, NewQuantity(1, Time(Minute)), NewQuantity(60, Time(Second)))
	assert.False(t, Equal(NewQuantity(1, Time(Minute)), NewQuantity(60, Time(Second))))
}
