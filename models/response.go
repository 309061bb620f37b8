package models

type RouteResponse struct {
	RequestID string     `json:"requestId"`
	Itinerary *Itinerary `json:"itinerary"`
	Meta      *MetaData  `json:"meta,omitempty"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorResponse struct {
	RequestID string   `json:"requestId"`
	Error     ApiError `json:"error"`
}

type MetaData struct {
	ProcessTime string `json:"process_time_ms"`
	ApiVersion  string `json:"api_version"`
	ResultCount *int   `json:"result_count,omitempty"`
}

type StationsResponse struct {
	Stations []Station `json:"stations"`
	Count    int       `json:"count"`
}

type LinesResponse struct {
	Lines []LineSummary `json:"lines"`
	Count int           `json:"count"`
}
