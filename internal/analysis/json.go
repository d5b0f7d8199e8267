package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type segmentJSON struct {
	Low   Point           `json:"low"`
	High  Point           `json:"high"`
	Slope json.RawMessage `json:"slope"`
}

// MarshalJSON encodes non-finite slopes as the strings "+Inf", "-Inf" and
// "NaN", which encoding/json cannot represent as numbers.
func (s PreferenceSegment) MarshalJSON() ([]byte, error) {
	var slope string
	switch {
	case math.IsNaN(s.Slope):
		slope = `"NaN"`
	case math.IsInf(s.Slope, 1):
		slope = `"+Inf"`
	case math.IsInf(s.Slope, -1):
		slope = `"-Inf"`
	default:
		slope = strconv.FormatFloat(s.Slope, 'g', -1, 64)
	}
	return json.Marshal(segmentJSON{Low: s.Low, High: s.High, Slope: json.RawMessage(slope)})
}

func (s *PreferenceSegment) UnmarshalJSON(data []byte) error {
	var raw segmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	text := string(raw.Slope)
	if len(raw.Slope) > 0 && raw.Slope[0] == '"' {
		if err := json.Unmarshal(raw.Slope, &text); err != nil {
			return err
		}
	}
	slope, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("analysis: invalid slope %s", raw.Slope)
	}
	*s = PreferenceSegment{Low: raw.Low, High: raw.High, Slope: slope}
	return nil
}
