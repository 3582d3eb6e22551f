package progression

// levelRewards maps a completed level to the item names granted for it.
// Level 5 (the cap) has no configured rewards.
var levelRewards = map[int][]string{
	1: {"cinturon", "cristal-rojo"},
	2: {"pechera", "cristal-amarillo"},
	3: {"botas", "cristal-gris"},
	4: {"casco", "cristal-verde"},
}

// RewardsForLevel returns the reward item names for a completed level
func RewardsForLevel(level int) []string {
	return levelRewards[level]
}
