package entities

import "time"

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ring is a polygon ring of [lon,lat] pairs. A valid ring carries at least
// four points and ends where it starts.
type Ring [][2]float64

func (r Ring) Closed() bool {
	if len(r) < 4 {
		return false
	}
	first, last := r[0], r[len(r)-1]
	return first[0] == last[0] && first[1] == last[1]
}

type Field struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Memo         string            `json:"memo"`
	Crop         string            `json:"crop"`
	Color        string            `json:"color"`
	Order        *int              `json:"order,omitempty"`
	DirectoryID  string            `json:"directory_id"`
	Center       LatLng            `json:"center"`
	Geometry     Ring              `json:"geometry"`
	LastAnalysis *AnalysisSnapshot `json:"last_analysis,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
