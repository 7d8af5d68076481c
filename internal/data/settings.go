package data

// StaBandSettings drives the STA projection band for one dataset. The values
// come from a dashboard-owned settings JSON; the pipeline treats them as
// opaque tuning.
type StaBandSettings struct {
	AngleDegrees  float64 `json:"angle_degrees"`
	OffsetSeconds float64 `json:"offset_seconds"`
}

// LoadStaBandSettings reads the dataset-keyed settings file.
func LoadStaBandSettings(path string) (map[string]StaBandSettings, error) {
	settings := map[string]StaBandSettings{}
	if err := ReadJSON(path, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
