// pkg/ceremony/events.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/avfx/watersalute/pkg/truck"
)

type EventType int

const (
	StateChangeEvent EventType = iota
	StartRejectedEvent
	NetworkLoadedEvent
	TruckPositionedEvent
	TruckDepartedEvent
	HornEvent
)

func (t EventType) String() string {
	return [...]string{"StateChange", "StartRejected", "NetworkLoaded",
		"TruckPositioned", "TruckDeparted", "Horn"}[t]
}

// Event is one ceremony notification. Only the fields relevant to the
// type are set.
type Event struct {
	Type      EventType
	State     State      // StateChangeEvent
	Side      truck.Side // TruckPositionedEvent, TruckDepartedEvent
	AirportID string     // NetworkLoadedEvent
	Reason    string     // StartRejectedEvent
}

func (e Event) String() string {
	switch e.Type {
	case StateChangeEvent:
		return fmt.Sprintf("StateChange: %s", e.State)
	case StartRejectedEvent:
		return fmt.Sprintf("StartRejected: %s", e.Reason)
	case NetworkLoadedEvent:
		return fmt.Sprintf("NetworkLoaded: %s", e.AirportID)
	case TruckPositionedEvent, TruckDepartedEvent:
		return fmt.Sprintf("%s: %s truck", e.Type, e.Side)
	default:
		return e.Type.String()
	}
}

func (e Event) LogValue() slog.Value {
	return slog.StringValue(e.String())
}

// EventStream is a small pub/sub stream for ceremony notifications: any
// part of the system can post and any number of subscribers drain at
// their own pace. Consumed events are compacted away once every
// subscriber has seen them.
type EventStream struct {
	mu            sync.Mutex
	events        []Event
	subscriptions map[*EventsSubscription]interface{}
}

type EventsSubscription struct {
	stream *EventStream
	// offset in the stream's events array up to which this subscriber
	// has consumed events so far.
	offset int
}

func NewEventStream() *EventStream {
	return &EventStream{subscriptions: make(map[*EventsSubscription]interface{})}
}

func (e *EventStream) Subscribe() *EventsSubscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := &EventsSubscription{stream: e, offset: len(e.events)}
	e.subscriptions[sub] = nil
	return sub
}

func (e *EventsSubscription) Unsubscribe() {
	e.stream.mu.Lock()
	defer e.stream.mu.Unlock()

	delete(e.stream.subscriptions, e)
}

func (e *EventStream) Post(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)
	e.compact()
}

// Get returns the events posted since the last Get call.
func (e *EventsSubscription) Get() []Event {
	s := e.stream
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := s.events[e.offset:]
	e.offset = len(s.events)
	return ev
}

// compact trims the leading events that all subscribers have consumed.
// Called with the mutex held.
func (e *EventStream) compact() {
	minOffset := len(e.events)
	for sub := range e.subscriptions {
		if sub.offset < minOffset {
			minOffset = sub.offset
		}
	}
	if minOffset > 0 {
		n := len(e.events) - minOffset
		copy(e.events, e.events[minOffset:])
		e.events = e.events[:n]
		for sub := range e.subscriptions {
			sub.offset -= minOffset
		}
	}
}
