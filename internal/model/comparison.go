package model

// Direction describes how a statistic moved between two analyses.
type Direction string

const (
	// DirectionIncreased means the current value is larger.
	DirectionIncreased Direction = "increased"
	// DirectionDecreased means the current value is smaller.
	DirectionDecreased Direction = "decreased"
	// DirectionUnchanged means both values are equal.
	DirectionUnchanged Direction = "unchanged"
)

// StatDelta is the change of one statistic between two analyses.
type StatDelta struct {
	Name      string    `json:"name"`
	Previous  float64   `json:"previous"`
	Current   float64   `json:"current"`
	Delta     float64   `json:"delta"`
	Direction Direction `json:"direction"`
	IsCount   bool      `json:"is_count,omitempty"`
}

// Comparison holds the differences between two analyses.
type Comparison struct {
	PreviousID int64       `json:"previous_id"`
	CurrentID  int64       `json:"current_id"`
	Deltas     []StatDelta `json:"deltas"`
}

// Changed returns the deltas whose direction is not DirectionUnchanged.
func (c *Comparison) Changed() []StatDelta {
	changed := make([]StatDelta, 0, len(c.Deltas))
	for _, d := range c.Deltas {
		if d.Direction != DirectionUnchanged {
			changed = append(changed, d)
		}
	}
	return changed
}

// Compare computes per-statistic deltas from previous to current.
// Both analyses must have a Summary; otherwise nil is returned.
func Compare(previous, current *Analysis) *Comparison {
	if previous == nil || current == nil || previous.Summary == nil || current.Summary == nil {
		return nil
	}

	prevStats := previous.Summary.Stats()
	curStats := current.Summary.Stats()

	deltas := make([]StatDelta, len(curStats))
	for i, cur := range curStats {
		prev := prevStats[i]
		deltas[i] = StatDelta{
			Name:      cur.Name,
			Previous:  prev.Value,
			Current:   cur.Value,
			Delta:     cur.Value - prev.Value,
			Direction: directionOf(prev.Value, cur.Value),
			IsCount:   cur.IsCount,
		}
	}

	return &Comparison{
		PreviousID: previous.ID,
		CurrentID:  current.ID,
		Deltas:     deltas,
	}
}

func directionOf(previous, current float64) Direction {
	switch {
	case current > previous:
		return DirectionIncreased
	case current < previous:
		return DirectionDecreased
	default:
		return DirectionUnchanged
	}
}
