package conversation

import "sync"

// Manager отслеживает активный диалог каждого пользователя.
// Состояние живёт только в памяти: незавершённая форма теряется
// при перезапуске, это принятое ограничение.
type Manager struct {
	mu     sync.Mutex
	active map[int64]State
}

func NewManager() *Manager {
	return &Manager{active: make(map[int64]State)}
}

// Start переводит пользователя в новый поток. Прежний поток, если был,
// молча отбрасывается — стека состояний нет.
func (m *Manager) Start(actorID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[actorID] = st
}

func (m *Manager) Current(actorID int64) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.active[actorID]
	return st, ok
}

// Clear снимает состояние безусловно.
func (m *Manager) Clear(actorID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, actorID)
}
