package geoloc

import (
	"math/rand"
	"sync"
	"time"
)

// WalkSource simulates a device by random-walking from a start point, one
// cardinal step per interval. Used for server deployments with no real
// geolocation hardware behind them.
type WalkSource struct {
	start    Update
	step     float64 // degrees per fix
	interval time.Duration
}

func NewWalkSource(start Update, step float64, interval time.Duration) *WalkSource {
	return &WalkSource{start: start, step: step, interval: interval}
}

func (w *WalkSource) Subscribe(fn func(Update)) (Subscription, error) {
	sub := &walkSub{done: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		pos := w.start
		for {
			select {
			case <-sub.done:
				return
			case <-ticker.C:
				switch rand.Intn(4) {
				case 0:
					pos.Lat += w.step
				case 1:
					pos.Lat -= w.step
				case 2:
					pos.Lng += w.step
				case 3:
					pos.Lng -= w.step
				}
				fn(pos)
			}
		}
	}()
	return sub, nil
}

type walkSub struct {
	once sync.Once
	done chan struct{}
}

func (s *walkSub) Stop() {
	s.once.Do(func() { close(s.done) })
}
