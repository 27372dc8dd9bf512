package domain

import "time"

// State is the persisted state of a single source loaded at the start of a run
type State struct {
	Scores    map[string]int  // last observed score per item id
	Published map[string]bool // ledger of every item id ever published
	History   []Entry         // newest first, bounded
}

// NewState makes an empty state, as seen on the first run
func NewState() *State {
	return &State{Scores: map[string]int{}, Published: map[string]bool{}}
}

// Commit holds all mutations of a run, applied atomically
type Commit struct {
	Scores    map[string]int // score updates only
	Published []string       // ids added to the ledger
	History   []Entry        // full new history
	Documents []Document     // all rendered pages, index 0 first
	Run       RunStats
}

// RunStats summarizes a single run
type RunStats struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Scanned    int
	Crossed    int
	Selected   int
	Published  int
	Failed     int
	Evicted    int
}
