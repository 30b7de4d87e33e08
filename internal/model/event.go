package model

import "time"

// Event is a titled time interval on the calendar. The JSON shape is the one
// the grid widget consumes and the one persisted under the "events" key.
type Event struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
}
