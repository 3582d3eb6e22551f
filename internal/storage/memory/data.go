package memory

import (
	"github.com/libroquest/gamebook-server/internal/model"
)

// Unexported table operations shared by Storage and txStorage. Callers hold
// whatever locking applies; nothing here locks.

func (d *data) createPlayer(player *model.Player) error {
	if _, taken := d.documentIndex[player.Document]; taken {
		return model.ErrDocumentTaken
	}
	p := *player
	d.players[p.ID] = &p
	d.documentIndex[p.Document] = p.ID
	return nil
}

func (d *data) getPlayer(id model.PlayerID) (*model.Player, error) {
	player, ok := d.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (d *data) getPlayerByDocument(document string) (*model.Player, error) {
	id, ok := d.documentIndex[document]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return d.getPlayer(id)
}

func (d *data) updatePlayer(player *model.Player) error {
	if _, ok := d.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	p := *player
	d.players[p.ID] = &p
	return nil
}

func (d *data) createSession(session *model.Session) error {
	if _, exists := d.sessions[session.Token]; exists {
		return model.ErrDuplicateToken
	}
	s := *session
	d.sessions[s.Token] = &s
	return nil
}

func (d *data) getSession(token string) (*model.Session, error) {
	session, ok := d.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	s := *session
	return &s, nil
}

func (d *data) deleteSession(token string) (int, error) {
	if _, ok := d.sessions[token]; !ok {
		return 0, nil
	}
	delete(d.sessions, token)
	return 1, nil
}

func (d *data) saveItem(item *model.Item) error {
	i := *item
	if i.ID == "" {
		i.ID = model.ItemIDFor(i.Name)
		item.ID = i.ID
	}
	d.items[i.ID] = &i
	d.itemNameIndex[i.Name] = i.ID
	return nil
}

func (d *data) getItemByName(name string) (*model.Item, error) {
	id, ok := d.itemNameIndex[name]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	item := *d.items[id]
	return &item, nil
}

func (d *data) getItemsByNames(names []string) ([]*model.Item, error) {
	var items []*model.Item
	for _, name := range names {
		item, err := d.getItemByName(name)
		if err != nil {
			// Names missing from the catalog are skipped, not an error
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *data) hasEarnedItem(playerID model.PlayerID, itemID model.ItemID) (bool, error) {
	for _, earned := range d.earned[playerID] {
		if earned == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (d *data) addEarnedItem(playerID model.PlayerID, itemID model.ItemID) error {
	if _, ok := d.items[itemID]; !ok {
		return model.ErrItemNotFound
	}
	has, _ := d.hasEarnedItem(playerID, itemID)
	if has {
		return nil
	}
	d.earned[playerID] = append(d.earned[playerID], itemID)
	return nil
}

func (d *data) getEarnedItems(playerID model.PlayerID) ([]*model.Item, error) {
	var items []*model.Item
	for _, itemID := range d.earned[playerID] {
		if item, ok := d.items[itemID]; ok {
			i := *item
			items = append(items, &i)
		}
	}
	return items, nil
}

func (d *data) appendTimeRecord(record *model.TimeRecord) error {
	d.timeRecords = append(d.timeRecords, *record)
	return nil
}

// TimeRecords returns a copy of the append-only time log. Only tests read
// this back; the core never does.
func (s *Storage) TimeRecords() []model.TimeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TimeRecord(nil), s.data.timeRecords...)
}
