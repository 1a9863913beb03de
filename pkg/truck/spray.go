// pkg/truck/spray.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package truck

import (
	"github.com/avfx/watersalute/pkg/host"
	"github.com/avfx/watersalute/pkg/math"
)

const (
	EmitRate     = 40  // particles/second per jet
	PerJetCap    = 300 // active particles per jet
	ParticleLife = 3.5 // seconds

	Gravity           = 9.81 // m/s^2
	DefaultDragCoeff  = 0.02 // per (m/s), applied as v^2 drag
	DefaultTurbulence = 0.3  // m/s of random velocity per emitted particle

	// MinLaunchPitch floors the pitch used to solve for launch speed:
	// the arc-height solution divides by sin(pitch), so a cannon pitched
	// at 0 launches as if pitched here. The cannon dataref itself still
	// accepts the full [0,90] range.
	MinLaunchPitch = 5 // degrees

	// ParticleModel names the droplet asset; missing assets are fine,
	// the simulation runs regardless.
	ParticleModel = "droplet"
)

// Particle is one water droplet. P and V are (x, y, z) with y up.
type Particle struct {
	P      [3]float32
	V      [3]float32
	Life   float32
	Active bool

	visual host.Instance
}

// UpdateSpray advances the particle simulation by dt. New particles are
// emitted only while the truck's cannon is on; existing ones keep flying
// either way so the arch collapses naturally when spraying stops.
func (t *Truck) UpdateSpray(dt float32, visuals host.Visuals) {
	if t.Spraying {
		t.emitAccum += EmitRate * dt
		for t.emitAccum >= 1 {
			t.emitAccum--
			if t.ActiveParticles() >= PerJetCap {
				break
			}
			t.emit(visuals)
		}
	} else {
		t.emitAccum = 0
	}

	for i := range t.Particles {
		t.stepParticle(&t.Particles[i], dt)
	}

	// Compact once the slice is mostly dead entries.
	if len(t.Particles) > 2*PerJetCap {
		t.prune()
	}
}

// emit launches one droplet from the nozzle. The launch speed is chosen
// so the arc tops out near the configured jet height; the cannon's pitch
// and yaw set the direction, with a little random spread.
func (t *Truck) emit(visuals host.Visuals) {
	nozzle := t.nozzlePosition()

	h := math.Max(t.JetHeight, 1)
	pitch := math.Clamp(t.CannonPitch, MinLaunchPitch, 90)
	sinP := math.Sin(math.Radians(pitch))
	speed := math.Sqrt(2*Gravity*h) / sinP

	dir := math.HeadingVector(math.NormalizeHeading(t.Heading + t.CannonYaw))
	horiz := speed * math.Cos(math.Radians(pitch))

	p := Particle{
		P: nozzle,
		V: [3]float32{
			dir[0]*horiz + t.Turbulence*t.r.SignedFloat32(),
			speed*sinP + t.Turbulence*t.r.SignedFloat32(),
			dir[1]*horiz + t.Turbulence*t.r.SignedFloat32(),
		},
		Life:   ParticleLife,
		Active: true,
	}

	if visuals != nil {
		if inst, err := visuals.NewInstance(ParticleModel); err == nil {
			p.visual = inst
		}
	}

	// Reuse a dead slot before growing the slice.
	for i := range t.Particles {
		if !t.Particles[i].Active {
			t.Particles[i] = p
			return
		}
	}
	t.Particles = append(t.Particles, p)
}

func (t *Truck) stepParticle(p *Particle, dt float32) {
	if !p.Active {
		return
	}

	p.Life -= dt
	if p.Life <= 0 {
		t.expire(p)
		return
	}

	p.V[1] -= Gravity * dt

	// Turbulence buffets the droplet throughout its flight, not just at
	// launch.
	p.V[0] += t.Turbulence * t.r.SignedFloat32() * dt
	p.V[1] += t.Turbulence * t.r.SignedFloat32() * dt
	p.V[2] += t.Turbulence * t.r.SignedFloat32() * dt

	// Quadratic drag opposing the velocity.
	vmag := math.Sqrt(math.Sqr(p.V[0]) + math.Sqr(p.V[1]) + math.Sqr(p.V[2]))
	if vmag > 0 {
		f := math.Max(1-t.DragCoeff*vmag*dt, 0)
		p.V[0] *= f
		p.V[1] *= f
		p.V[2] *= f
	}

	p.P[0] += p.V[0] * dt
	p.P[1] += p.V[1] * dt
	p.P[2] += p.V[2] * dt

	// Inelastic ground contact: the droplet skids rather than bounces.
	ground := t.terrain.ElevationAt([2]float32{p.P[0], p.P[2]})
	if p.P[1] < ground {
		p.P[1] = ground
		if p.V[1] < 0 {
			p.V[1] = 0
		}
		p.V[0] *= 0.5
		p.V[2] *= 0.5
	}

	if p.visual != nil {
		p.visual.SetPose([2]float32{p.P[0], p.P[2]}, p.P[1], 0)
	}
}

func (t *Truck) expire(p *Particle) {
	p.Active = false
	if p.visual != nil {
		p.visual.Release()
		p.visual = nil
	}
}

func (t *Truck) prune() {
	live := t.Particles[:0]
	for _, p := range t.Particles {
		if p.Active {
			live = append(live, p)
		}
	}
	t.Particles = live
}

func (t *Truck) releaseParticles() {
	for i := range t.Particles {
		t.expire(&t.Particles[i])
	}
	t.Particles = t.Particles[:0]
}

// ActiveParticles returns the number of live droplets from this jet.
func (t *Truck) ActiveParticles() int {
	n := 0
	for i := range t.Particles {
		if t.Particles[i].Active {
			n++
		}
	}
	return n
}

// nozzlePosition returns the world-space emission point: the nozzle
// offset rotated into the vehicle's heading frame.
func (t *Truck) nozzlePosition() [3]float32 {
	off := math.RotateHeading2f([2]float32{t.NozzleOffset[0], t.NozzleOffset[2]}, t.Heading)
	return [3]float32{
		t.Position[0] + off[0],
		t.Elevation + t.NozzleOffset[1],
		t.Position[1] + off[1],
	}
}

// ParticlesNear counts droplets from all of the given trucks within a
// horizontal radius and vertical band of an observation point.
func ParticlesNear(trucks []*Truck, obs [3]float32, radius, heightBand float32) int {
	n := 0
	r2 := math.Sqr(radius)
	for _, t := range trucks {
		for i := range t.Particles {
			p := &t.Particles[i]
			if !p.Active {
				continue
			}
			if math.Abs(p.P[1]-obs[1]) > heightBand {
				continue
			}
			dx, dz := p.P[0]-obs[0], p.P[2]-obs[2]
			if dx*dx+dz*dz <= r2 {
				n++
			}
		}
	}
	return n
}
