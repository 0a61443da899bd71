package draft

// TeamForPick maps a global pick number to the 0-based index of the team
// that owns it. It is the single source of truth for turn order: both
// pick assignment and the team-on-the-clock display go through it.
//
// pick must be in [1, cfg.TotalPicks()]; callers validate the range before
// invoking.
func TeamForPick(pick int, cfg Config) int {
	pickInRound := ((pick - 1) % cfg.NumTeams) + 1
	if cfg.Type == Snake && RoundForPick(pick, cfg)%2 == 0 {
		// Even rounds run in reverse
		return cfg.NumTeams - pickInRound
	}
	return pickInRound - 1
}

// RoundForPick returns the 1-based round a global pick number falls in
func RoundForPick(pick int, cfg Config) int {
	return (pick-1)/cfg.NumTeams + 1
}
