package model

// ItemID uniquely identifies a catalog item
type ItemID string

// Item type tags used by the default catalog
const (
	ItemTypeArmadura = "armadura"
	ItemTypeCristal  = "cristal"
)

// Item is a catalog entry. Catalog items are reference data: they are seeded
// at startup and never created through the normal API flow.
type Item struct {
	ID       ItemID
	Name     string // unique
	ItemType string
}

// ItemIDFor derives the stable catalog ID for an item name
func ItemIDFor(name string) ItemID {
	return ItemID("item_" + name)
}

// TimeRecord is an append-only log entry of the seconds a player spent on a
// level they just completed. The core never reads these back.
type TimeRecord struct {
	PlayerID PlayerID
	Level    int
	Seconds  int64
}
