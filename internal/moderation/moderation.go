package moderation

// Gate — статический allow-list модераторов из конфигурации.
// Проверяется на каждом вызове закрытой операции, не кэшируется.
type Gate struct {
	ids map[int64]struct{}
}

func NewGate(moderatorIDs []int64) *Gate {
	ids := make(map[int64]struct{}, len(moderatorIDs))
	for _, id := range moderatorIDs {
		ids[id] = struct{}{}
	}
	return &Gate{ids: ids}
}

func (g *Gate) IsModerator(actorID int64) bool {
	_, ok := g.ids[actorID]
	return ok
}
