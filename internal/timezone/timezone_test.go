package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDateIsZoneAnchored(t *testing.T) {
	d, err := ParseDate("America/Sao_Paulo", "2030-07-15")
	require.NoError(t, err)

	assert.Equal(t, 15, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "America/Sao_Paulo", d.Location().String())

	_, err = ParseDate("America/Sao_Paulo", "15/07/2030")
	assert.Error(t, err)
}

func TestCivilDate(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	late := time.Date(2030, 7, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC), CivilDate(late))
	assert.Equal(t, time.Date(2030, 7, 16, 0, 0, 0, 0, loc), NextDay(late))
}
