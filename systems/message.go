package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// Event is anything the engines report: locomotion, climbing and combat
// events all satisfy it.
type Event interface {
	EventName() string
}

// GameplayEvent is an engine event tagged with the entity that raised it.
type GameplayEvent struct {
	Entity donburi.Entity
	Source string // Avatar or target name
	Frame  int
	Event  Event
}

// GameplayEvents fans engine events out to subscribers once per frame.
var GameplayEvents = events.NewEventType[GameplayEvent]()

func publish[E Event](w donburi.World, e *donburi.Entry, source string, frame int, evs ...E) {
	for _, ev := range evs {
		GameplayEvents.Publish(w, GameplayEvent{
			Entity: e.Entity(),
			Source: source,
			Frame:  frame,
			Event:  ev,
		})
	}
}

// ProcessEvents delivers everything published this frame. Runs after the
// gameplay systems.
func ProcessEvents(ecs *ecs.ECS) {
	GameplayEvents.ProcessEvents(ecs.World)
}
