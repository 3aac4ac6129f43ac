package main

import "github.com/yairfalse/kulut/cmd/kulut/commands"

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, buildTime)
	commands.Execute()
}
