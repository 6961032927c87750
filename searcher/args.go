package searcher

// Hyperparameters for the rollout search

// Rollouts of one candidate are split into batches of this size. Each
// batch owns its random generator, so results only depend on the seed and
// never on how batches are scheduled across goroutines.
const DefaultBatchSize = 64

// Salts mixed into the per-search seed
const (
	firstMoveSalt = 0x9e3779b97f4a7c15
	batchSalt     = 0xbf58476d1ce4e5b9
)
