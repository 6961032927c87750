package engine

import (
	"tilemerge/communication/client"
)

// RemoteEngine hosts the game locally and asks the agent server at url for
// every move.
func RemoteEngine(url string, seed uint64, options ...Option) Engine {
	return LocalEngine(client.New(url), seed, options...)
}
