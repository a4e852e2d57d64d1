package board

// Prediction is one extracted arrival row. EtaMinutes is nil when no numeric
// or keyword estimate could be parsed; zero means the vehicle is imminent.
type Prediction struct {
	Route      string `json:"route"`
	Headsign   string `json:"headsign"`
	EtaMinutes *int   `json:"eta_minutes"`
}
