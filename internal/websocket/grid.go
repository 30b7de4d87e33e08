package websocket

import "github.com/dukerupert/calboard/internal/model"

// Grid forwards calendar notifications to connected pages, which apply them
// to the widget's own event cache.
type Grid struct {
	hub *Hub
}

func NewGrid(hub *Hub) *Grid {
	return &Grid{hub: hub}
}

func (g *Grid) Unselect()                  { g.hub.Broadcast(SelectionCleared()) }
func (g *Grid) AddEvent(ev model.Event)    { g.hub.Broadcast(EventCreated(ev)) }
func (g *Grid) UpdateEvent(ev model.Event) { g.hub.Broadcast(EventUpdated(ev)) }
func (g *Grid) RemoveEvent(id string)      { g.hub.Broadcast(EventDeleted(id)) }
