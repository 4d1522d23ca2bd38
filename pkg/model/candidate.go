// pkg/model/candidate.go
package model

import "fmt"

// Label is the disposition assigned to a scored candidate
type Label int

const (
	// LabelAPC is an ambiguous planet candidate
	LabelAPC Label = iota
	// LabelPC is a planet candidate
	LabelPC
	// LabelCP is a confirmed planet
	LabelCP
)

// String returns the short disposition code
func (l Label) String() string {
	switch l {
	case LabelCP:
		return "CP"
	case LabelPC:
		return "PC"
	case LabelAPC:
		return "APC"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Description returns the long form of the disposition
func (l Label) Description() string {
	switch l {
	case LabelCP:
		return "Confirmed Planet"
	case LabelPC:
		return "Planet Candidate"
	case LabelAPC:
		return "Ambiguous Planet Candidate"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Label) UnmarshalText(text []byte) error {
	switch string(text) {
	case "CP":
		*l = LabelCP
	case "PC":
		*l = LabelPC
	case "APC":
		*l = LabelAPC
	default:
		return fmt.Errorf("unknown label %q", text)
	}
	return nil
}

// CandidateRecord is the scored output for one catalog row. Values are already
// rounded to their reporting precision.
type CandidateRecord struct {
	ID       string  `json:"id"`
	Period   float64 `json:"period"`   // days, 2 decimals
	Duration float64 `json:"duration"` // hours, 2 decimals
	Depth    float64 `json:"depth"`    // ppm, whole
	StarMag  float64 `json:"star_mag"` // magnitude as provided, 2 decimals
	Score    float64 `json:"score"`    // 0-100, 1 decimal
	Label    Label   `json:"label"`
}

// DatasetStats summarizes the scores of every record produced for a dataset
type DatasetStats struct {
	Total    int     `json:"total"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	PassRate float64 `json:"pass_rate"`
}
