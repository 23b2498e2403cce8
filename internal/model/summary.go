package model

// Summary holds the descriptive statistics of a non-empty number list.
type Summary struct {
	// === Basic ===

	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Mode    float64 `json:"mode"`

	// === Range ===

	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Range float64 `json:"range"`

	// === Dispersion ===

	// StdDev is the population standard deviation.
	StdDev float64 `json:"std_dev"`

	// Variance is StdDev * StdDev.
	Variance float64 `json:"variance"`

	// === Quartiles ===

	Quartiles Quartiles `json:"quartiles"`

	// IQR is Quartiles.Q3 - Quartiles.Q1.
	IQR float64 `json:"iqr"`

	// === Signs ===

	Signs SignCounts `json:"signs"`
}

// Quartiles holds order-statistic quartiles.
// All three values are zero for lists with fewer than four elements.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// SignCounts counts strictly positive, strictly negative and zero values.
type SignCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Zero     int `json:"zero"`
}

// Total returns the number of values counted.
func (s SignCounts) Total() int {
	return s.Positive + s.Negative + s.Zero
}

// Stat is one named statistic of a Summary.
type Stat struct {
	// Name is the display name used in reports.
	Name string `json:"name"`

	// Value is the statistic value. Counts are stored as whole numbers.
	Value float64 `json:"value"`

	// IsCount marks integer statistics that are rendered without decimals.
	IsCount bool `json:"is_count,omitempty"`
}

// Stats returns the statistics in report order.
func (s *Summary) Stats() []Stat {
	return []Stat{
		{Name: "Count", Value: float64(s.Count), IsCount: true},
		{Name: "Sum", Value: s.Sum},
		{Name: "Average", Value: s.Average},
		{Name: "Median", Value: s.Median},
		{Name: "Mode", Value: s.Mode},
		{Name: "Minimum", Value: s.Min},
		{Name: "Maximum", Value: s.Max},
		{Name: "Range", Value: s.Range},
		{Name: "Standard Deviation", Value: s.StdDev},
		{Name: "Variance", Value: s.Variance},
		{Name: "Q1", Value: s.Quartiles.Q1},
		{Name: "Q2", Value: s.Quartiles.Q2},
		{Name: "Q3", Value: s.Quartiles.Q3},
		{Name: "IQR", Value: s.IQR},
		{Name: "Positive", Value: float64(s.Signs.Positive), IsCount: true},
		{Name: "Negative", Value: float64(s.Signs.Negative), IsCount: true},
		{Name: "Zero", Value: float64(s.Signs.Zero), IsCount: true},
	}
}
