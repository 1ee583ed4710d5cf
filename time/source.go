// Package time provides a replaceable source of the current time and of tickers.
package time

import (
	"sort"
	"sync"
	"time"
)

// Ticker delivers ticks in intervals. The tick value is the time of the tick.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Source interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type StdSource struct{}

func (s *StdSource) Now() time.Time {
	return time.Now()
}

func (s *StdSource) NewTicker(d time.Duration) Ticker {
	return &stdTicker{
		ticker: time.NewTicker(d),
	}
}

type stdTicker struct {
	ticker *time.Ticker
}

func (t *stdTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *stdTicker) Stop() {
	t.ticker.Stop()
}

// ManualSource is a Source that only moves forward if Advance or Set is called.
// Tickers fire while advancing the time. A ticker that has not been read keeps
// only its newest tick.
type ManualSource struct {
	now     time.Time
	tickers map[*manualTicker]struct{}
	lock    sync.Mutex
}

func NewManualSource(now time.Time) *ManualSource {
	return &ManualSource{
		now:     now,
		tickers: map[*manualTicker]struct{}{},
	}
}

func (s *ManualSource) Now() time.Time {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.now
}

func (s *ManualSource) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("non-positive interval for NewTicker")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	t := &manualTicker{
		source:   s,
		interval: d,
		next:     s.now.Add(d),
		c:        make(chan time.Time, 1),
	}

	s.tickers[t] = struct{}{}

	return t
}

// Tickers returns the number of active tickers.
func (s *ManualSource) Tickers() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.tickers)
}

// Set moves the time to t without firing any tickers.
func (s *ManualSource) Set(t time.Time) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.now = t
}

// Advance moves the time forward by d. Every ticker with a deadline
// within the passed time fires, in order of the deadlines.
func (s *ManualSource) Advance(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()

	target := s.now.Add(d)

	for {
		due := []*manualTicker{}

		for t := range s.tickers {
			if !t.next.After(target) {
				due = append(due, t)
			}
		}

		if len(due) == 0 {
			break
		}

		sort.Slice(due, func(i, j int) bool {
			return due[i].next.Before(due[j].next)
		})

		next := due[0].next
		s.now = next

		for _, t := range due {
			if !t.next.Equal(next) {
				break
			}

			t.fire(next)
			t.next = next.Add(t.interval)
		}
	}

	s.now = target
}

func (s *ManualSource) remove(t *manualTicker) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.tickers, t)
}

type manualTicker struct {
	source   *ManualSource
	interval time.Duration
	next     time.Time
	c        chan time.Time
}

func (t *manualTicker) C() <-chan time.Time {
	return t.c
}

func (t *manualTicker) Stop() {
	t.source.remove(t)
}

func (t *manualTicker) fire(now time.Time) {
	for {
		select {
		case t.c <- now:
			return
		default:
		}

		// Drop the stale tick
		select {
		case <-t.c:
		default:
		}
	}
}
