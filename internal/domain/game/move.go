package game

// @name Move
type Move struct {
	Color       string `json:"color" bson:"color"`
	Coordinates string `json:"coordinates" bson:"coordinates"`
}

// @name MoveRequest
// Either Row and Col or Vertex must be set. Vertex uses GTP notation
// ("D4", "pass"). Color is optional and must match the side to move.
type MoveRequest struct {
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Vertex string `json:"vertex,omitempty"`
	Color  string `json:"color,omitempty"`
}

// @name PassRequest
type PassRequest struct {
	Color string `json:"color,omitempty"`
}
