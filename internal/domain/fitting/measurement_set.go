package fitting

// Measurement field names as they appear in feedback payloads and in the
// upstream line-item property bag. The values themselves are opaque short
// strings with an embedded unit ("47 cm") and are never parsed numerically.
const (
	FieldNeck          = "neck"
	FieldChest         = "chest"
	FieldStomach       = "stomach"
	FieldSeat          = "seat"
	FieldBicep         = "bicep"
	FieldSleeveLength  = "sleeveLength"
	FieldShoulderWidth = "shoulderWidth"
	FieldTeeLength     = "teeLength"
	FieldArmHole       = "armHole"
	FieldWrist         = "wrist"
	FieldInitials      = "initials"
	FieldSizeName      = "sizeName"
)

// MeasurementSet holds the ten garment measurements plus the monogram
// initials. An empty string means the value was never captured.
type MeasurementSet struct {
	Neck          string
	Chest         string
	Stomach       string
	Seat          string
	Bicep         string
	SleeveLength  string
	ShoulderWidth string
	TeeLength     string
	ArmHole       string
	Wrist         string
	Initials      string
}

// PropertyLookup resolves a named key to a value. It reports false when the
// key is absent, letting callers distinguish "missing" from "empty".
type PropertyLookup interface {
	Lookup(key string) (string, bool)
}

// MeasurementSetFromProperties projects a measurement set out of an upstream
// property bag. The scan is deliberately tolerant: a missing key yields the
// empty value instead of an error.
func MeasurementSetFromProperties(props PropertyLookup) MeasurementSet {
	get := func(key string) string {
		v, _ := props.Lookup(key)
		return v
	}
	return MeasurementSet{
		Neck:          get(FieldNeck),
		Chest:         get(FieldChest),
		Stomach:       get(FieldStomach),
		Seat:          get(FieldSeat),
		Bicep:         get(FieldBicep),
		SleeveLength:  get(FieldSleeveLength),
		ShoulderWidth: get(FieldShoulderWidth),
		TeeLength:     get(FieldTeeLength),
		ArmHole:       get(FieldArmHole),
		Wrist:         get(FieldWrist),
		Initials:      get(FieldInitials),
	}
}

// ApplyCorrections overwrites fields named in the corrections map. Unknown
// field names are ignored; fields absent from the map keep their value.
func (m *MeasurementSet) ApplyCorrections(corrections map[string]string) {
	for field, value := range corrections {
		switch field {
		case FieldNeck:
			m.Neck = value
		case FieldChest:
			m.Chest = value
		case FieldStomach:
			m.Stomach = value
		case FieldSeat:
			m.Seat = value
		case FieldBicep:
			m.Bicep = value
		case FieldSleeveLength:
			m.SleeveLength = value
		case FieldShoulderWidth:
			m.ShoulderWidth = value
		case FieldTeeLength:
			m.TeeLength = value
		case FieldArmHole:
			m.ArmHole = value
		case FieldWrist:
			m.Wrist = value
		case FieldInitials:
			m.Initials = value
		}
	}
}
