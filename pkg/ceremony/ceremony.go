// pkg/ceremony/ceremony.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ceremony sequences the water salute: it owns the two trucks,
// the ceremony state machine, the ground-network loader, the windshield
// proximity effect, and the persisted configuration.
package ceremony

import (
	"github.com/avfx/watersalute/pkg/groundnet"
	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/log"
	"github.com/avfx/watersalute/pkg/math"
	"github.com/avfx/watersalute/pkg/route"
	"github.com/avfx/watersalute/pkg/truck"
	"github.com/avfx/watersalute/pkg/util"
)

type State int

const (
	Idle State = iota
	Approaching
	Positioning
	Spraying
	Leaving
)

func (s State) String() string {
	return [...]string{"Idle", "Approaching", "Positioning", "Spraying", "Leaving"}[s]
}

const (
	// MaxStartGroundspeed rejects starts against a still-taxiing
	// aircraft.
	MaxStartGroundspeed = 30 // knots

	SpawnDistance = 120 // meters behind the aircraft
	StopDistance  = 25  // meters ahead of the aircraft
	LateralMargin = 20  // meters beyond the wing tip

	DefaultWingspan = 30 // meters
	minWingspan     = 10
	maxWingspan     = 90

	// MaxDeltaTime bounds a single step; a long frame hitch becomes one
	// clamped step rather than a huge integration jump.
	MaxDeltaTime = 0.25 // seconds

	HornSound  = "horn"
	SpraySound = "spray"
)

// Hosts bundles the simulator services the ceremony consumes.
type Hosts struct {
	Telemetry host.Telemetry
	Terrain   host.Terrain
	Transform host.Transform
	Weather   host.Weather
	Audio     host.Audio
	Visuals   host.Visuals
}

// System is the ceremony orchestrator. All entry points are method
// calls; it is stepped once per host frame via Update and holds no
// goroutines of its own.
type System struct {
	State  State
	Config *Config

	trucks  [2]*truck.Truck
	network *groundnet.Network
	loader  *groundnet.Loader
	effect  proximityEffect
	events  *EventStream

	hosts Hosts
	seed  int64

	// aircraft is the telemetry snapshot captured when the ceremony
	// started; trucks hold position relative to it, not to live data.
	aircraft host.AircraftState

	wasAirborne bool

	lg *log.Logger
}

func New(cfg *Config, hosts Hosts, seed int64, lg *log.Logger) *System {
	return &System{
		Config: cfg,
		loader: &groundnet.Loader{
			Paths:          cfg.RoutingFiles,
			SearchRadiusNM: groundnet.DefaultSearchRadiusNM,
			Lg:             lg,
		},
		effect: proximityEffect{weather: hosts.Weather},
		events: NewEventStream(),
		hosts:  hosts,
		seed:   seed,
		lg:     lg,
	}
}

func (s *System) Events() *EventStream { return s.events }

// Trucks returns the live vehicles, nil while Idle. Callers must treat
// them as read-only outside the dataref accessors.
func (s *System) Trucks() []*truck.Truck {
	if s.trucks[0] == nil {
		return nil
	}
	return s.trucks[:]
}

// Start requests a ceremony. Preconditions are checked here, once: the
// aircraft must be on the ground and slower than MaxStartGroundspeed.
// A rejected start posts an event and leaves the state untouched.
func (s *System) Start() bool {
	if s.State != Idle {
		s.reject("ceremony already running")
		return false
	}

	ac := s.hosts.Telemetry.Aircraft()
	if !ac.OnGround {
		s.reject("aircraft is airborne")
		return false
	}
	if ac.Groundspeed >= MaxStartGroundspeed {
		s.reject("aircraft is moving too fast")
		return false
	}

	s.aircraft = ac
	s.spawnTrucks(ac)
	s.setState(Approaching)
	return true
}

func (s *System) reject(reason string) {
	s.lg.Infof("start rejected: %s", reason)
	s.events.Post(Event{Type: StartRejectedEvent, Reason: reason})
}

// spawnTrucks runs the whole spawn and planning cascade. This happens
// exactly once per ceremony; nothing here re-runs on later ticks.
func (s *System) spawnTrucks(ac host.AircraftState) {
	wingspan := validateWingspan(ac.Semispan)
	spacing := wingspan/2 + LateralMargin

	ahead := math.HeadingVector(ac.Heading)
	right := math.HeadingVector(math.NormalizeHeading(ac.Heading + 90))

	s.loadNetwork(ac)

	for i, side := range []truck.Side{truck.Left, truck.Right} {
		sign := float32(-1)
		if side == truck.Right {
			sign = 1
		}
		lateral := math.Scale2f(right, sign*spacing)

		spawn := math.Add2f(math.Add2f(ac.Position, math.Scale2f(ahead, -SpawnDistance)), lateral)
		target := math.Add2f(math.Add2f(ac.Position, math.Scale2f(ahead, StopDistance)), lateral)

		// The trucks face each other across the centerline so the two
		// water arcs meet above the aircraft.
		targetHeading := math.NormalizeHeading(ac.Heading + sign*-90)

		t := truck.New(side, s.hosts.Terrain, s.hosts.Visuals, s.seed+int64(i), s.lg)
		t.Cruise = s.Config.CruiseSpeed
		t.JetHeight = s.Config.JetHeight
		t.Target = target
		t.TargetHeading = targetHeading

		if s.network != nil && s.network.Loaded {
			if n := s.network.FindNearestNode(spawn, true); n != -1 {
				spawn = s.network.Nodes[n].Local
			}
			t.Reset(spawn, math.Heading2f(spawn, target))
			t.SetRoute(route.Plan(spawn, target, targetHeading, t.Cruise, s.network))
		} else {
			t.Reset(spawn, math.Heading2f(spawn, target))
		}

		s.trucks[i] = t
	}
}

func (s *System) loadNetwork(ac host.AircraftState) {
	s.network = nil
	if len(s.loader.Paths) == 0 || s.hosts.Transform == nil {
		return
	}

	var e util.ErrorLogger
	net, ok := s.loader.Load(ac.LatLong, s.hosts.Transform, &e)
	if e.HaveErrors() {
		e.PrintErrors(s.lg)
	}
	if !ok {
		s.lg.Infof("no ground network near aircraft; using direct approach")
		return
	}

	s.network = net
	s.events.Post(Event{Type: NetworkLoadedEvent, AirportID: net.AirportID})
}

// validateWingspan interprets the host's raw wingspan-related value as a
// semispan in either meters or feet, falling back to a default when
// neither interpretation is plausible.
func validateWingspan(semispan float32) float32 {
	if w := 2 * semispan; w >= minWingspan && w <= maxWingspan {
		return w
	}
	if w := 2 * semispan * math.FeetToMeters; w >= minWingspan && w <= maxWingspan {
		return w
	}
	return DefaultWingspan
}

// Stop sends the ceremony into its departure sequence from any active
// state. Stopping while Idle or already Leaving is a no-op. There is no
// pause: a stop during the approach still plays out the full
// turn-and-depart sequence.
func (s *System) Stop() {
	if s.State == Idle || s.State == Leaving {
		return
	}
	for _, t := range s.trucks {
		t.Spraying = false
		t.SetDeparture()
	}
	s.setState(Leaving)
}

// Toggle starts the ceremony when Idle and stops it otherwise.
func (s *System) Toggle() {
	if s.State == Idle {
		s.Start()
	} else {
		s.Stop()
	}
}

// Horn plays the one-shot horn sample. Pure signal, no state change.
func (s *System) Horn() {
	s.events.Post(Event{Type: HornEvent})
	if s.Config.SoundEnabled {
		s.hosts.Audio.Play(HornSound, s.Config.SoundVolume)
	}
}

// Update advances the whole system by one frame. dt is clamped to
// MaxDeltaTime.
func (s *System) Update(dt float32) {
	dt = math.Clamp(dt, 0, MaxDeltaTime)

	s.autoStart()

	switch s.State {
	case Idle:
		// The windshield effect may still be mid-fade after teardown;
		// the ambient value is restored only once it reaches zero.
		s.effect.update(dt, false, nil, [3]float32{})
		return

	case Approaching, Positioning:
		positioned := true
		for _, t := range s.trucks {
			was := t.Positioned
			t.Update(dt, s.aircraft.Position)
			if t.Positioned && !was {
				s.events.Post(Event{Type: TruckPositionedEvent, Side: t.Side})
			}
			positioned = positioned && t.Positioned
		}
		if s.State == Approaching && (s.trucks[0].Positioned || s.trucks[1].Positioned) {
			s.setState(Positioning)
		}
		if positioned {
			s.startSpraying()
		}

	case Spraying:
		for _, t := range s.trucks {
			t.Update(dt, s.aircraft.Position)
			t.UpdateSpray(dt, s.hosts.Visuals)
		}
		obs := s.observer()
		s.effect.update(dt, true, s.trucks[:], obs)

	case Leaving:
		departed := true
		for _, t := range s.trucks {
			was := t.Departed
			t.Update(dt, s.aircraft.Position)
			t.UpdateSpray(dt, s.hosts.Visuals) // leftover droplets keep falling
			if t.Departed && !was {
				s.events.Post(Event{Type: TruckDepartedEvent, Side: t.Side})
			}
			departed = departed && t.Departed
		}
		s.effect.update(dt, false, s.trucks[:], s.observer())
		if departed {
			s.teardown()
		}
	}
}

func (s *System) startSpraying() {
	for _, t := range s.trucks {
		t.Spraying = true
	}
	if s.Config.SoundEnabled {
		s.hosts.Audio.Play(SpraySound, s.Config.SoundVolume)
	}
	s.setState(Spraying)
}

func (s *System) teardown() {
	for i, t := range s.trucks {
		t.Destroy()
		s.trucks[i] = nil
	}
	s.network = nil
	s.setState(Idle)
}

// autoStart triggers one Start per landing when enabled: the aircraft
// must be seen airborne before a touchdown arms the trigger again.
func (s *System) autoStart() {
	if !s.Config.AutoStart {
		return
	}
	ac := s.hosts.Telemetry.Aircraft()
	if !ac.OnGround {
		s.wasAirborne = true
	} else if s.wasAirborne {
		s.wasAirborne = false
		if s.State == Idle && ac.Groundspeed < MaxStartGroundspeed {
			s.Start()
		}
	}
}

// observer is the windshield sample point: the cockpit, approximated as
// a fixed height above the ground at the aircraft position.
func (s *System) observer() [3]float32 {
	p := s.aircraft.Position
	y := s.hosts.Terrain.ElevationAt(p) + ObserverHeight
	return [3]float32{p[0], y, p[1]}
}

func (s *System) setState(st State) {
	if st == s.State {
		return
	}
	s.lg.Infof("ceremony state: %s -> %s", s.State, st)
	s.State = st
	s.events.Post(Event{Type: StateChangeEvent, State: st})
}

// Intensity returns the current windshield-wetting intensity in [0,1].
func (s *System) Intensity() float32 { return s.effect.intensity }
