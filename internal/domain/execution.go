package domain

import "time"

// Invocation is everything the simulator needs for one case
type Invocation struct {
	Case       TestCase
	RomPath    string
	RamPath    string
	DumpPath   string
	MaxClock   uint64
	SignalAddr uint64
	Timeout    time.Duration
}

// Execution is what came back from the simulator process
type Execution struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Progress is the live view of a run published while cases complete
type Progress struct {
	RunID string            `json:"runId"`
	Cases map[string]string `json:"cases"`
	Stats RunStatistics     `json:"stats"`
}
