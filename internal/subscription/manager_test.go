package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/flock/models"
	"github.com/stretchr/testify/assert"
)

func testComment(id string, postID models.ID) *models.Comment {
	return &models.Comment{
		ID:        models.ID(id),
		PostID:    postID,
		Comment:   "Test comment",
		CreatedBy: "789",
		CreatedAt: time.Now(),
	}
}

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := models.ID("123")

		ch, cancel := manager.Subscribe(postID)
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)
		assert.Equal(t, 1, manager.Subscribers(postID))

		// Вызываем отмену подписки
		cancel()

		assert.Equal(t, 0, manager.Subscribers(postID))
		manager.mu.Lock()
		_, exists := manager.subs[postID]
		manager.mu.Unlock()
		assert.False(t, exists)
	})

	t.Run("Multiple subscriptions to the same post", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := models.ID("123")

		// Создаем 3 подписки
		_, cancel1 := manager.Subscribe(postID)
		_, cancel2 := manager.Subscribe(postID)
		_, cancel3 := manager.Subscribe(postID)
		assert.Equal(t, 3, manager.Subscribers(postID))

		// Отменяем вторую подписку
		cancel2()
		assert.Equal(t, 2, manager.Subscribers(postID))

		cancel1()
		cancel3()
		assert.Equal(t, 0, manager.Subscribers(postID))
	})

	t.Run("Cancel twice does not panic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel := manager.Subscribe("123")
		cancel()
		assert.NotPanics(t, cancel)
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	t.Run("Should deliver to all subscribers of the post", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe("post1")
		ch2, cancel2 := manager.Subscribe("post1")
		defer cancel1()
		defer cancel2()

		comment := testComment("456", "post1")
		manager.Publish("post1", comment)

		for i, ch := range []<-chan *models.Comment{ch1, ch2} {
			select {
			case received := <-ch:
				assert.Equal(t, comment, received, "Subscriber %d did not receive correct comment", i+1)
			case <-time.After(time.Second):
				t.Fatalf("Subscriber %d timed out waiting for comment", i+1)
			}
		}
	})

	t.Run("Should only send to subscribers of the specific post", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe("post1")
		ch2, cancel2 := manager.Subscribe("post2")
		defer cancel1()
		defer cancel2()

		comment := testComment("456", "post1")
		manager.Publish("post1", comment)

		select {
		case received := <-ch1:
			assert.Equal(t, comment, received)
		case <-time.After(time.Second):
			t.Fatal("Subscriber of post1 timed out waiting for comment")
		}

		select {
		case <-ch2:
			t.Fatal("Subscriber of post2 should not receive the comment")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Slow subscriber is skipped", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel := manager.Subscribe("post1")
		defer cancel()

		// буфер на 1 сообщение: второе ждет publishTimeout и пропускается
		manager.Publish("post1", testComment("1", "post1"))

		done := make(chan struct{})
		go func() {
			manager.Publish("post1", testComment("2", "post1"))
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Publish blocked on a slow subscriber")
		}
	})

	t.Run("Publishing to a post with no subscribers should not panic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		assert.NotPanics(t, func() {
			manager.Publish("post1", testComment("456", "post1"))
		})
	})
}

func TestSubscriptionManager_Concurrent(t *testing.T) {
	t.Run("Concurrent subscriptions and publications", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := models.ID("123")

		numSubscribers := 10
		numPublications := 5

		var (
			mu       sync.Mutex
			received = make([]int, numSubscribers)
			cancels  = make([]func(), numSubscribers)
			readers  sync.WaitGroup
		)

		for i := 0; i < numSubscribers; i++ {
			ch, cancel := manager.Subscribe(postID)
			cancels[i] = cancel

			readers.Add(1)
			go func(idx int, ch <-chan *models.Comment) {
				defer readers.Done()
				for comment := range ch {
					assert.Equal(t, postID, comment.PostID)
					mu.Lock()
					received[idx]++
					mu.Unlock()
				}
			}(i, ch)
		}

		var wg sync.WaitGroup
		for i := 0; i < numPublications; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				manager.Publish(postID, testComment(strconv.Itoa(1000+idx), postID))
			}(i)
		}
		wg.Wait()

		for _, cancel := range cancels {
			cancel()
		}
		readers.Wait()

		mu.Lock()
		defer mu.Unlock()
		for i := 0; i < numSubscribers; i++ {
			assert.Equal(t, numPublications, received[i], "Subscriber %d did not receive all publications", i)
		}
	})

	t.Run("Concurrent subscribes and unsubscribes", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := models.ID("123")

		var wg sync.WaitGroup
		numOperations := 100

		for i := 0; i < numOperations; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				ch, cancel := manager.Subscribe(postID)
				time.Sleep(5 * time.Millisecond)
				cancel()

				// Проверяем, что канал закрыт
				_, ok := <-ch
				assert.False(t, ok, "Channel should be closed after cancel")
			}()
		}

		wg.Wait()

		assert.Equal(t, 0, manager.Subscribers(postID))
	})
}
