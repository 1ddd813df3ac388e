package main

import (
	"os"

	"github.com/btcsuite/btclog"
)

// subsystem is the logging tag used for the tool's output.
const subsystem = "SIZR"

var (
	backendLog = btclog.NewBackend(os.Stderr)
	log        = backendLog.Logger(subsystem)
)
