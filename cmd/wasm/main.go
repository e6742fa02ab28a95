package main

import (
	"flag"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/frontend"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console).
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	// The whole client is one page: the root component switches between
	// lobby, waiting room, and board based on the session phase.
	app.Route("/", func() app.Composer { return &frontend.Home{} })

	// Build the session, load persisted identity/room id, and connect to
	// the game server.
	frontend.InitState()

	// When building for web (GOOS=js GOARCH=wasm), this runs the client.
	app.RunWhenOnBrowser()
}
