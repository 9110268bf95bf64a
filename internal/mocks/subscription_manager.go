package mocks

import (
	"sync"

	"github.com/VitaminP8/flock/internal/subscription"
	"github.com/VitaminP8/flock/models"
)

// MockSubscriptionManager запоминает опубликованные комментарии
// и передает их настоящему менеджеру
type MockSubscriptionManager struct {
	*subscription.SubscriptionManager

	mu            sync.Mutex
	notifications map[models.ID][]*models.Comment
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		SubscriptionManager: subscription.NewSubscriptionManager(),
		notifications:       make(map[models.ID][]*models.Comment),
	}
}

func (m *MockSubscriptionManager) Publish(postID models.ID, comment *models.Comment) {
	m.mu.Lock()
	m.notifications[postID] = append(m.notifications[postID], comment)
	m.mu.Unlock()

	m.SubscriptionManager.Publish(postID, comment)
}

// GetNotificationsForPost возвращает все уведомления для конкретного поста
func (m *MockSubscriptionManager) GetNotificationsForPost(postID models.ID) []*models.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications[postID]
}
