package driver

import "sync"

// chanLog собирает ProgressEvent из рабочих горутин.
type chanLog struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (l *chanLog) record(ev ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *chanLog) count(st FileStatus) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Status == st {
			n++
		}
	}
	return n
}
