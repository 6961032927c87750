// meta/meta.go
package meta

import "time"

// RolloutDepth bounds each simulated game, counting the first move.
const RolloutDepth = 3200

// RolloutsPerMove is the number of simulations per legal first move.
const RolloutsPerMove = 4800

// Goroutines defines the number of rollout workers.
const Goroutines = 8

// MaxMoves caps a single game, 0 means play until the board locks.
const MaxMoves = 0

const MoveDelay = 0 * time.Millisecond

const ListenAddr = ":8080"

const AgentURL = "http://localhost:8080"

const ExperimentGames = 10

const ExperimentDir = "experiments"

const LogLevel = "info"
