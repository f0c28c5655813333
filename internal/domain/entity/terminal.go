package entity

// Terminal is a ferry quay the assistant can route to.
type Terminal struct {
	// ID is the national stop register quay identifier, e.g. "NSR:Quay:7209".
	ID string `json:"id"`

	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
}
