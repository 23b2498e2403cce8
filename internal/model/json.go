package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Spellings of non-finite values in JSON. Statistics of finite inputs can
// still overflow, and encoding/json rejects Inf and NaN.
const (
	infText    = "inf"
	negInfText = "-inf"
	nanText    = "nan"
)

// jsonFloat is a float64 that encodes non-finite values as strings.
type jsonFloat float64

// MarshalJSON implements json.Marshaler.
func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return json.Marshal(nanText)
	case math.IsInf(v, 1):
		return json.Marshal(infText)
	case math.IsInf(v, -1):
		return json.Marshal(negInfText)
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		switch text {
		case infText:
			*f = jsonFloat(math.Inf(1))
		case negInfText:
			*f = jsonFloat(math.Inf(-1))
		case nanText:
			*f = jsonFloat(math.NaN())
		default:
			return fmt.Errorf("invalid number %q", text)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type quartilesJSON struct {
	Q1 jsonFloat `json:"q1"`
	Q2 jsonFloat `json:"q2"`
	Q3 jsonFloat `json:"q3"`
}

type summaryJSON struct {
	Count     int           `json:"count"`
	Sum       jsonFloat     `json:"sum"`
	Average   jsonFloat     `json:"average"`
	Median    jsonFloat     `json:"median"`
	Mode      jsonFloat     `json:"mode"`
	Min       jsonFloat     `json:"min"`
	Max       jsonFloat     `json:"max"`
	Range     jsonFloat     `json:"range"`
	StdDev    jsonFloat     `json:"std_dev"`
	Variance  jsonFloat     `json:"variance"`
	Quartiles quartilesJSON `json:"quartiles"`
	IQR       jsonFloat     `json:"iqr"`
	Signs     SignCounts    `json:"signs"`
}

// MarshalJSON implements json.Marshaler.
// Non-finite statistics are written as "inf", "-inf" or "nan".
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		Count:    s.Count,
		Sum:      jsonFloat(s.Sum),
		Average:  jsonFloat(s.Average),
		Median:   jsonFloat(s.Median),
		Mode:     jsonFloat(s.Mode),
		Min:      jsonFloat(s.Min),
		Max:      jsonFloat(s.Max),
		Range:    jsonFloat(s.Range),
		StdDev:   jsonFloat(s.StdDev),
		Variance: jsonFloat(s.Variance),
		Quartiles: quartilesJSON{
			Q1: jsonFloat(s.Quartiles.Q1),
			Q2: jsonFloat(s.Quartiles.Q2),
			Q3: jsonFloat(s.Quartiles.Q3),
		},
		IQR:   jsonFloat(s.IQR),
		Signs: s.Signs,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw summaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Summary{
		Count:    raw.Count,
		Sum:      float64(raw.Sum),
		Average:  float64(raw.Average),
		Median:   float64(raw.Median),
		Mode:     float64(raw.Mode),
		Min:      float64(raw.Min),
		Max:      float64(raw.Max),
		Range:    float64(raw.Range),
		StdDev:   float64(raw.StdDev),
		Variance: float64(raw.Variance),
		Quartiles: Quartiles{
			Q1: float64(raw.Quartiles.Q1),
			Q2: float64(raw.Quartiles.Q2),
			Q3: float64(raw.Quartiles.Q3),
		},
		IQR:   float64(raw.IQR),
		Signs: raw.Signs,
	}
	return nil
}

type statDeltaJSON struct {
	Name      string    `json:"name"`
	Previous  jsonFloat `json:"previous"`
	Current   jsonFloat `json:"current"`
	Delta     jsonFloat `json:"delta"`
	Direction Direction `json:"direction"`
	IsCount   bool      `json:"is_count,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d StatDelta) MarshalJSON() ([]byte, error) {
	return json.Marshal(statDeltaJSON{
		Name:      d.Name,
		Previous:  jsonFloat(d.Previous),
		Current:   jsonFloat(d.Current),
		Delta:     jsonFloat(d.Delta),
		Direction: d.Direction,
		IsCount:   d.IsCount,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *StatDelta) UnmarshalJSON(data []byte) error {
	var raw statDeltaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = StatDelta{
		Name:      raw.Name,
		Previous:  float64(raw.Previous),
		Current:   float64(raw.Current),
		Delta:     float64(raw.Delta),
		Direction: raw.Direction,
		IsCount:   raw.IsCount,
	}
	return nil
}
