package main

import (
	"vlrscraper/cmd/vlr-cli/commands"
	"vlrscraper/pkg/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
