package event

// ChunkGenerated is emitted after a full chunk span has been walked.
type ChunkGenerated struct {
	ChunkID  int64
	Theme    string
	StartY   float64
	EndY     float64
	Placed   int
	Rejected int
}

// PlatformsReaped is emitted after a destruction sweep removed platforms.
type PlatformsReaped struct {
	Count     int
	Threshold float64
}
