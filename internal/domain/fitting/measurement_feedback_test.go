package fitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{"customerId":"CUST-1","sizeName":"My Size","measurements":{"chest":"43"}}`

func TestParseFeedbackPayload(t *testing.T) {
	p, err := ParseFeedbackPayload(validPayload)
	require.NoError(t, err)
	assert.Equal(t, "CUST-1", p.CustomerID)
	assert.Equal(t, "My Size", p.SizeName)
	assert.Equal(t, "43", p.Measurements["chest"])
}

func TestParseFeedbackPayload_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{chest: wide"},
		{"missing customer", `{"sizeName":"My Size"}`},
		{"missing size name", `{"customerId":"CUST-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeedbackPayload(tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestNewMeasurementFeedback(t *testing.T) {
	record, err := NewMeasurementFeedback("5501", validPayload, false, "customer")
	require.NoError(t, err)
	assert.Equal(t, "5501", record.OrderID)
	assert.Equal(t, validPayload, record.Payload)
	assert.False(t, record.Approved)

	_, err = NewMeasurementFeedback("", validPayload, false, "customer")
	assert.Error(t, err)

	_, err = NewMeasurementFeedback("5501", "{", false, "customer")
	assert.Error(t, err)
}

func TestMeasurementFeedback_Overwrite(t *testing.T) {
	record, err := NewMeasurementFeedback("5501", validPayload, false, "customer")
	require.NoError(t, err)

	edited := `{"customerId":"CUST-1","sizeName":"My Size","measurements":{"chest":"44"}}`
	require.NoError(t, record.Overwrite(edited, true, "priya"))
	assert.Equal(t, edited, record.Payload)
	assert.True(t, record.Approved)
	assert.Equal(t, "priya", record.UpdatedBy)

	// A replacement payload must still parse
	err = record.Overwrite(`{"sizeName":"My Size"}`, true, "priya")
	assert.Error(t, err)
	assert.Equal(t, edited, record.Payload)
}

func TestMeasurementProfile_ApplyFeedbackCorrections(t *testing.T) {
	profile, err := NewMeasurementProfile("CUST-1", "My Size", MeasurementSet{Chest: "42", Neck: "16"}, "customer")
	require.NoError(t, err)
	profile.NewSize = true

	profile.ApplyFeedbackCorrections(map[string]string{FieldChest: "43"}, "priya")

	assert.Equal(t, "43", profile.Measurements.Chest)
	assert.Equal(t, "16", profile.Measurements.Neck)
	assert.False(t, profile.NewSize, "a feedback cycle settles the size")
	assert.Equal(t, "priya", profile.UpdatedBy)
}
