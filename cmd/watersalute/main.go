// cmd/watersalute/main.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// watersalute runs a headless water-salute ceremony against stub host
// services: useful for exercising the state machine, the path planner
// against a real ground-routing file, and for eyeballing event output.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/avfx/watersalute/pkg/ceremony"
	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/log"
	"github.com/avfx/watersalute/pkg/math"
)

var logLevel = flag.String("loglevel", "info", "Logging level: debug, info, warn, error")
var logDir = flag.String("logdir", "", "Directory for the log file (default: user config dir)")
var configPath = flag.String("config", "", "Config file path (default: user config dir)")
var routing = flag.String("routing", "", "Comma-separated ground-routing files, highest priority first")
var seed = flag.Int64("seed", 1, "Random seed for deterministic runs")
var duration = flag.Float64("duration", 120, "Simulated seconds to run before stopping the ceremony")
var lat = flag.Float64("lat", 0, "Aircraft latitude")
var lon = flag.Float64("lon", 0, "Aircraft longitude")
var heading = flag.Float64("heading", 0, "Aircraft heading, degrees")
var semispan = flag.Float64("semispan", 15, "Aircraft semispan, meters")

const dt = 1.0 / 30

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = ceremony.ConfigFilePath(lg)
	}
	cfg := ceremony.LoadOrMakeDefaultConfig(cfgPath, lg)
	if *routing != "" {
		cfg.RoutingFiles = strings.Split(*routing, ",")
	}

	ll := math.Point2LL{float32(*lon), float32(*lat)}
	hosts := ceremony.Hosts{
		Telemetry: &host.StaticTelemetry{State: host.AircraftState{
			OnGround: true,
			Heading:  float32(*heading),
			LatLong:  ll,
			Semispan: float32(*semispan),
		}},
		Terrain:   host.NewCachedTerrain(&host.FlatTerrain{}, 16384),
		Transform: host.NewProjectedTransform(ll),
		Weather:   &host.MemoryWeather{},
		Audio:     host.NullAudio{},
		Visuals:   host.NullVisuals{},
	}

	sys := ceremony.New(cfg, hosts, *seed, lg)
	sub := sys.Events().Subscribe()

	if !sys.Start() {
		fmt.Fprintln(os.Stderr, "watersalute: ceremony start rejected")
		os.Exit(1)
	}

	elapsed := float32(0)
	stopAt := float32(*duration)
	for {
		sys.Update(dt)
		elapsed += dt

		for _, ev := range sub.Get() {
			fmt.Printf("[%7.2f] %s\n", elapsed, ev)
		}

		if elapsed >= stopAt {
			sys.Stop()
			stopAt = 1e30 // stop once
		}
		if sys.State == ceremony.Idle {
			break
		}
		if elapsed > float32(*duration)+600 {
			// A truck that can never reach its target stalls the
			// ceremony indefinitely; bail out rather than spin.
			fmt.Fprintln(os.Stderr, "watersalute: ceremony stalled, giving up")
			break
		}
	}

	snap := sys.Snapshot()
	fmt.Printf("done after %.1f simulated seconds, final state %s\n", elapsed, snap.State)

	if err := cfg.Save(cfgPath, lg); err != nil {
		lg.Errorf("%s: %v", cfgPath, err)
	}
}
