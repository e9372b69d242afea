package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"neurondemo/internal/cli"
	"neurondemo/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "neurondemo crashed: %v\n", r)
			os.Exit(cli.ExitFailure)
		}
	}()

	// SIGINT is left to the commands so playback can stop cleanly
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGABRT, syscall.SIGHUP)
	go func() {
		sig := <-signalChan
		log.Error("SIGNAL RECEIVED", "signal", sig.String(), "stack", string(debug.Stack()))
		log.Close()
		os.Exit(cli.ExitFailure)
	}()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := root.Execute()
	log.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
