package adversary

// Params are the tuned constants of the adversarial placement.
type Params struct {
	ReachabilityPenalty float64 `yaml:"reachability_penalty"` // subtracted when the cell is not the farthest one along the last move
	ClusterBonus        float64 `yaml:"cluster_bonus"`        // per sorted neighbour pair differing by at most 1
	NeighborWeight      float64 `yaml:"neighbor_weight"`      // scales sum/(1+n) of neighbour log values
	IsolationPenalty    float64 `yaml:"isolation_penalty"`    // subtracted when the cell has no neighbours
	TwoDecay            float64 `yaml:"two_decay"`            // base of the 2-tile chance
	MinChance2          float64 `yaml:"min_chance2"`
	MaxChance2          float64 `yaml:"max_chance2"`
	FallbackChance2     float64 `yaml:"fallback_chance2"` // chance of a 2 for random spawns
}

// DefaultParams returns the tuned constants.
func DefaultParams() Params {
	return Params{
		ReachabilityPenalty: 20,
		ClusterBonus:        8,
		NeighborWeight:      5,
		IsolationPenalty:    100,
		TwoDecay:            0.3,
		MinChance2:          0.05,
		MaxChance2:          0.9,
		FallbackChance2:     0.9,
	}
}
