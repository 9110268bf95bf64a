package subscription

import "github.com/VitaminP8/flock/models"

// Manager рассылает новые комментарии подписчикам поста
type Manager interface {
	Subscribe(postID models.ID) (<-chan *models.Comment, func())
	Publish(postID models.ID, comment *models.Comment)
}
