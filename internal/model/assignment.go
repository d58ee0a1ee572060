package model

// Assignment pairs a player with the guild it should now belong to.
// An empty GuildID clears the player's guild reference.
type Assignment struct {
	PlayerID string `json:"player_id"`
	GuildID  string `json:"guild_id"`
}

// Clears reports whether the assignment removes the player from its guild
func (a Assignment) Clears() bool {
	return a.GuildID == ""
}

// BalanceRequest represents a request to distribute unassigned players
type BalanceRequest struct {
	MaxGuildPlayers int      `json:"max_guild_players"`
	PlayerIDs       []string `json:"player_ids,omitempty"` // empty selects every player
	DryRun          bool     `json:"dry_run,omitempty"`
}

// SkippedPlayer is a candidate that found no guild with free capacity
type SkippedPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name,omitempty"`
	Reason   string `json:"reason"`
}

// BalanceResult is the outcome of one balancing run
type BalanceResult struct {
	Assignments []Assignment    `json:"assignments"`
	Skipped     []SkippedPlayer `json:"skipped"`
	Applied     bool            `json:"applied"`
	Guilds      []*Guild        `json:"guilds,omitempty"`
}
