package response_models

// Days come back date-ascending; activities start-time-ascending with
// missing times first.
type DayResponse struct {
	ID                 string             `json:"id"`
	Date               string             `json:"date"` // "2006-01-02"
	DestinationPlaceID *string            `json:"destination_place_id,omitempty"`
	DestinationName    *string            `json:"destination_name,omitempty"`
	Activities         []ActivityResponse `json:"activities"`
}

type ActivityResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	StartTime   *string  `json:"start_time,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
	Place       *string  `json:"place,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Images      []string `json:"images"`
}
