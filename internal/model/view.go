package model

// PlayerView is the externally visible read-model: the player's profile
// joined with every item they have earned. Item order is not guaranteed.
type PlayerView struct {
	Player Player
	Items  []Item
}
