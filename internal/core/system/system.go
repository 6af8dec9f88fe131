package system

import "time"

// Phase defines execution ordering within a single tick. Generation always
// completes before destruction, so a platform can never be created and
// reaped inside the same logical step.
type Phase int

const (
	PhaseEvents      Phase = iota // 0: deliver last tick's events
	PhaseInput                    // 1: ingest collaborator scalars (viewport, hazard)
	PhaseGenerate                 // 2: extend the world
	PhaseDestroy                  // 3: reap behind the void
	PhaseDiagnostics              // 4: periodic stats output
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
