package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	PlotStateAvailable = "disponible"
	PlotStateReserved  = "reservado"

	DefaultPlotName = "Lote"
)

// Plot is a land parcel drawn on the map. JSON names match the browser client.
type Plot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	State      string          `json:"estado"`
	Coords     json.RawMessage `json:"coords"`
	Height     *float64        `json:"altura"`
	ReservedBy *string         `json:"reservedBy"`
	ReservedAt *int64          `json:"reservedAt"` // unix milliseconds
}

// Reserved reports whether the plot currently carries a reservation.
func (p *Plot) Reserved() bool {
	return p.State == PlotStateReserved
}

// NewPlot holds the client-supplied fields for a plot being created.
type NewPlot struct {
	Name   string          `json:"name"`
	State  string          `json:"estado"`
	Coords json.RawMessage `json:"coords"`
	Height json.RawMessage `json:"altura"`
}

// PlotUpdate holds the fields of a partial plot update. Empty strings and a
// missing height mean "leave unchanged".
type PlotUpdate struct {
	Name       string          `json:"name"`
	State      string          `json:"estado"`
	Height     json.RawMessage `json:"altura"`
	ReservedBy string          `json:"reservedBy"`
}

// ParseHeight coerces a raw JSON value into a height. Numbers, numeric
// strings and booleans are accepted. It returns false for null, absent,
// non-finite or otherwise unparseable input.
func ParseHeight(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizePlotState lower-cases a client-supplied state.
func NormalizePlotState(state string) string {
	return strings.ToLower(state)
}
