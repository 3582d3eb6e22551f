package response

import (
	"github.com/libroquest/gamebook-server/internal/model"
)

// Item represents a catalog item in API responses
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ItemType string `json:"item_type"`
}

// ItemFromModel converts a model.Item to a response Item
func ItemFromModel(i model.Item) Item {
	return Item{
		ID:       string(i.ID),
		Name:     i.Name,
		ItemType: i.ItemType,
	}
}

// Player represents the assembled player view in API responses.
// Money stays a decimal string on the wire.
type Player struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Name     string `json:"name"`
	School   string `json:"school"`
	Gender   string `json:"gender"`
	Money    string `json:"money"`
	Level    int    `json:"level"`
	Items    []Item `json:"items"`
}

// PlayerFromView converts a model.PlayerView to a response Player
func PlayerFromView(v *model.PlayerView) Player {
	items := make([]Item, len(v.Items))
	for i, item := range v.Items {
		items[i] = ItemFromModel(item)
	}
	return Player{
		ID:       string(v.Player.ID),
		Document: v.Player.Document,
		Name:     v.Player.Name,
		School:   string(v.Player.School),
		Gender:   string(v.Player.Gender),
		Money:    v.Player.Money,
		Level:    v.Player.Level,
		Items:    items,
	}
}

// AuthResponse is the response for a successful login
type AuthResponse struct {
	Token  string `json:"token"`
	Player Player `json:"player"`
}

// LogoutResponse reports the outcome of a logout
type LogoutResponse struct {
	OK      bool `json:"ok"`
	Deleted int  `json:"deleted"`
}
