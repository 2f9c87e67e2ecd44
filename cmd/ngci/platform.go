// +build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// registerSignals calls shutdown once on SIGINT or SIGTERM, so the
// parameter file is always saved before exit (spec §6's exit-time
// read-modify-write).
func registerSignals(shutdown func()) {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigchan
		shutdown()
	}()
}
