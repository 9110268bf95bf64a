package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/flock/models"
)

// publishTimeout сколько ждем медленного подписчика, прежде чем пропустить его
const publishTimeout = 500 * time.Millisecond

type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[models.ID][]chan *models.Comment // postID -> список каналов подписчиков
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[models.ID][]chan *models.Comment),
	}
}

func (m *SubscriptionManager) Subscribe(postID models.ID) (<-chan *models.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *models.Comment, 1) // Буфер 1, чтобы не блокировался писатель

	m.subs[postID] = append(m.subs[postID], ch)

	// функция для отписки, повторный вызов ничего не делает
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()

			subscribers := m.subs[postID]
			for i, sub := range subscribers {
				if sub == ch {
					m.subs[postID] = append(subscribers[:i], subscribers[i+1:]...)
					break
				}
			}
			if len(m.subs[postID]) == 0 {
				delete(m.subs, postID)
			}
			close(ch)
		})
	}

	return ch, cancel
}

func (m *SubscriptionManager) Publish(postID models.ID, comment *models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[postID] {
		timer := time.NewTimer(publishTimeout)
		select {
		case sub <- comment:
		case <-timer.C:
			// канал заполнен, подписчик не успевает - пропускаем
		}
		timer.Stop()
	}
}

// Subscribers количество активных подписок на пост
func (m *SubscriptionManager) Subscribers(postID models.ID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.subs[postID])
}
