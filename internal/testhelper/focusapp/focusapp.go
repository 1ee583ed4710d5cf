package main

import (
	"os"
	"os/signal"
	"time"
)

// Stands in for an app that is watched by a session. It runs until it is
// killed or interrupted, or after an optional number of seconds given as
// first argument.
func main() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	var timeout <-chan time.Time

	if len(os.Args) > 1 {
		if d, err := time.ParseDuration(os.Args[1] + "s"); err == nil {
			timeout = time.After(d)
		}
	}

	select {
	case <-quit:
		os.Exit(255)
	case <-timeout:
	}
}
