package queue

import "time"

// Timer is a cancellable pending callback
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks; tests substitute a manual clock
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// goSpawn runs f on a new goroutine
func goSpawn(f func()) {
	go f()
}
