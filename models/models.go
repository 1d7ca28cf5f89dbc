package models

// Trash types accepted by the service. The strings are stored verbatim in
// the database and used as JSON values, so they never change casing.
const (
	TypePlastic   = "plastic"
	TypeGlass     = "glass"
	TypePaper     = "paper"
	TypeBulkyItem = "bulky_item"
	TypeHazardous = "hazardous"
	TypeOther     = "other"
)

// TrashTypes lists every valid trash type, in display order.
var TrashTypes = []string{
	TypePlastic,
	TypeGlass,
	TypePaper,
	TypeBulkyItem,
	TypeHazardous,
	TypeOther,
}

type TrashEntry struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"` // RFC 3339, UTC
	TrashType string  `json:"trash_type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	UserName  string  `json:"user_name,omitempty"` // empty means anonymous
}

// CreateEntryInput is the payload for a new entry, before the store assigns
// an id and timestamp.
type CreateEntryInput struct {
	TrashType string
	Latitude  float64
	Longitude float64
	PhotoURL  string
	UserName  string
}

// EntryFilter narrows entry queries. Empty fields are ignored. Dates are
// RFC 3339 strings compared against the stored timestamp, bounds inclusive.
type EntryFilter struct {
	StartDate string
	EndDate   string
	TrashType string
}

type EntriesResponse struct {
	Entries    []TrashEntry `json:"entries"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type Hotspot struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
	Radius    float64 `json:"radius"` // meters, fixed display constant
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Statistics struct {
	TotalCount     int            `json:"total_count"`
	MostCommonType string         `json:"most_common_type"`
	Hotspots       []Hotspot      `json:"hotspots"`
	TypeBreakdown  map[string]int `json:"type_breakdown"`
	DateRange      DateRange      `json:"date_range"`
}

type ViewPort struct {
	LatMin float64 `json:"latmin"`
	LonMin float64 `json:"lonmin"`
	LatMax float64 `json:"latmax"`
	LonMax float64 `json:"lonmax"`
}

// MapPoint is one aggregated point on the map. EntryID and TrashType are
// only meaningful when Count == 1.
type MapPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int64   `json:"count"`
	EntryID   string  `json:"entry_id,omitempty"`
	TrashType string  `json:"trash_type,omitempty"`
}

type MapResponse struct {
	Points []MapPoint `json:"points"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
