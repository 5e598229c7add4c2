package request_models

type CreateDayRequest struct {
	// Optional; absent means "the day after the trip's current last day".
	Date               *string `json:"date"`
	DestinationPlaceID *string `json:"destination_place_id"`
	DestinationName    *string `json:"destination_name"`
}

type UpdateDayRequest struct {
	DestinationPlaceID *string `json:"destination_place_id"`
	DestinationName    *string `json:"destination_name"`
}

// CreateActivityRequest fields are all optional; the engine fills in a
// placeholder name and an append-after-last time window.
type CreateActivityRequest struct {
	Name        *string  `json:"name"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Place       *string  `json:"place"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type UpdateActivityRequest struct {
	Name        *string  `json:"name"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Place       *string  `json:"place"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type RemoveImageRequest struct {
	URL string `json:"url" binding:"required"`
}
