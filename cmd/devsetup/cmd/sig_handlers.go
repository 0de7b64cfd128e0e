// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// contextWithSignals returns a context which is cancelled on SIGINT or SIGTERM.
//
// The running external command is killed, and the run cleans up after itself before exiting.
// A second signal terminates the process immediately.
func contextWithSignals(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	signalChan := make(chan os.Signal, 2)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-signalChan:
			infoLogger.Printf("Received %v, cleaning up...", sig)
			cancel()
		case <-done:
			return
		}

		select {
		case <-signalChan:
			infoLogger.Println("Interrupted again, exiting without cleanup")
			osExit(130)
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(signalChan)
		close(done)
		cancel()
	}
}
