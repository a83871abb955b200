package services

// TrendPoint is one month of a dashboard trend series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendProvider supplies the month-over-month dashboard series. The upstream
// charts were never derived from records, so the provider boundary exists to
// make that explicit: the default implementation returns fixed illustrative
// data and says so via Source, and a real historical-snapshot provider can be
// swapped in without touching the dashboard handlers.
type TrendProvider interface {
	CompletionTrend() []TrendPoint
	PerformanceTrend() []TrendPoint
	// Source labels the series origin, e.g. "illustrative" or "snapshots".
	Source() string
}

// IllustrativeTrends is the placeholder provider. The numbers are fixtures,
// not metrics; responses carry the "illustrative" source label so the UI can
// flag them.
type IllustrativeTrends struct{}

func (IllustrativeTrends) CompletionTrend() []TrendPoint {
	return []TrendPoint{
		{Label: "Jan", Value: 72},
		{Label: "Feb", Value: 75},
		{Label: "Mar", Value: 71},
		{Label: "Apr", Value: 80},
		{Label: "May", Value: 84},
		{Label: "Jun", Value: 82},
	}
}

func (IllustrativeTrends) PerformanceTrend() []TrendPoint {
	return []TrendPoint{
		{Label: "Jan", Value: 78},
		{Label: "Feb", Value: 79},
		{Label: "Mar", Value: 83},
		{Label: "Apr", Value: 81},
		{Label: "May", Value: 85},
		{Label: "Jun", Value: 88},
	}
}

func (IllustrativeTrends) Source() string {
	return "illustrative"
}
