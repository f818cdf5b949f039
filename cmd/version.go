package cmd

// Version is the application version.
// Set at build time with:
//
//	go build -ldflags "-X github.com/xkilldash9x/graft/cmd.Version=1.0.0"
var Version = "0.1.0-dev"
