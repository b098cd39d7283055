package fitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapLookup map[string]string

func (m mapLookup) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestMeasurementSetFromProperties(t *testing.T) {
	props := mapLookup{
		FieldNeck:         "16",
		FieldChest:        "42 cm",
		FieldSleeveLength: "24",
		FieldInitials:     "RS",
		"teeType":         "Crew Neck", // non-measurement keys are ignored
	}

	ms := MeasurementSetFromProperties(props)

	assert.Equal(t, "16", ms.Neck)
	assert.Equal(t, "42 cm", ms.Chest)
	assert.Equal(t, "24", ms.SleeveLength)
	assert.Equal(t, "RS", ms.Initials)
	// Missing keys yield empty values, not errors
	assert.Empty(t, ms.Stomach)
	assert.Empty(t, ms.Wrist)
}

func TestMeasurementSet_ApplyCorrections(t *testing.T) {
	ms := MeasurementSet{Neck: "16", Chest: "42", Wrist: "7"}

	ms.ApplyCorrections(map[string]string{
		FieldChest: "43",
		FieldSeat:  "40",
		"height":   "180", // unknown field names are ignored
	})

	assert.Equal(t, "43", ms.Chest)
	assert.Equal(t, "40", ms.Seat)
	assert.Equal(t, "16", ms.Neck)
	assert.Equal(t, "7", ms.Wrist)
}
