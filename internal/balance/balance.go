// Package balance classifies predicted lane supply against predicted demand.
package balance

// Status is the three-way supply/demand classification of a lane.
type Status string

const (
	Balanced    Status = "Balanced"
	Underbooked Status = "Underbooked"
	Overbooked  Status = "Overbooked"
)

// Figures holds the derived numbers for one classification. Available may be
// negative; a negative value is exactly what Overbooked means.
type Figures struct {
	Total     int    `json:"total"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
	Status    Status `json:"status"`
}

// Classify compares predicted capacity against predicted demand.
func Classify(predictedAvailable, predictedBooked int) Figures {
	status := Balanced
	switch {
	case predictedAvailable > predictedBooked:
		status = Underbooked
	case predictedAvailable < predictedBooked:
		status = Overbooked
	}
	return Figures{
		Total:     predictedAvailable,
		Booked:    predictedBooked,
		Available: predictedAvailable - predictedBooked,
		Status:    status,
	}
}

// CarrierFigures is one carrier's entry in a lane-wide breakdown.
type CarrierFigures struct {
	Carrier  string `json:"carrier"`
	SCACCode string `json:"scac_code"`
	Figures
}

// Aggregate is the lane-wide view: the per-carrier breakdown plus the same
// classification applied to the summed totals.
type Aggregate struct {
	Breakdown      []CarrierFigures
	TotalTrucks    int
	TotalAvailable int
	TotalBooked    int
	Overall        Status
}

// AggregateCarriers sums every carrier's figures and classifies the totals.
// An empty breakdown classifies as Balanced (0 == 0).
func AggregateCarriers(entries []CarrierFigures) Aggregate {
	agg := Aggregate{Breakdown: entries}
	for _, e := range entries {
		agg.TotalTrucks += e.Total
		agg.TotalAvailable += e.Available
		agg.TotalBooked += e.Booked
	}
	agg.Overall = Classify(agg.TotalTrucks, agg.TotalBooked).Status
	return agg
}
