package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/pkg/profile"
	desktop "github.com/richinsley/goglapp/desktop"
	options "github.com/richinsley/goglapp/options"
)

func init() {
	// GLFW and the GL context are bound to the main thread.
	runtime.LockOSThread()
}

func run() int {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("OpenGL application demo")
		flag.PrintDefaults()
		return 0
	}

	cfg, err := opts.Resolve(flag.CommandLine)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		return -1
	}

	switch {
	case *opts.CPUProfile:
		if *opts.MemProfile {
			log.Println("Only one profile can run at a time, using the CPU profile")
		}
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*opts.ProfileDir), profile.NoShutdownHook).Stop()
	case *opts.MemProfile:
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*opts.ProfileDir), profile.NoShutdownHook).Stop()
	}

	client := newDemo(cfg)
	application, glBackend := desktop.New(client, desktop.Hints(cfg))
	client.application = application
	client.gpu = glBackend

	log.Printf("Starting %q (%dx%d)", cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	return application.Run()
}

func main() {
	os.Exit(run())
}
