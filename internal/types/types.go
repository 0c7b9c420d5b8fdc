// README: Common value objects shared across modules.
package types

// ID is an opaque document identifier.
type ID string

// Point is a geocoded coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}
