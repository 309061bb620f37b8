package models

type RouteRequest struct {
	From        string           `json:"from" binding:"required"`
	To          string           `json:"to" binding:"required"`
	Preferences RoutePreferences `json:"preferences,omitempty"`
}

// RoutePreferences carries optional search context. Hour feeds the penalty
// hooks only; with the default modifier it has no effect on the result.
type RoutePreferences struct {
	Hour *float64 `json:"hour,omitempty" binding:"omitempty,gte=0,lt=24"`
}
