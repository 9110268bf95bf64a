package mongodb

import (
	"context"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDocument struct {
	ID         bson.ObjectID   `bson:"_id,omitempty"`
	Name       string          `bson:"name"`
	Email      string          `bson:"email"`
	Password   string          `bson:"password"`
	Posts      []bson.ObjectID `bson:"posts"`
	Comments   []bson.ObjectID `bson:"comments"`
	Followers  []bson.ObjectID `bson:"followers"`
	Followings []bson.ObjectID `bson:"followings"`
	CreatedAt  time.Time       `bson:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:         models.ID(d.ID.Hex()),
		Name:       d.Name,
		Email:      d.Email,
		Password:   d.Password,
		Posts:      toIDs(d.Posts),
		Comments:   toIDs(d.Comments),
		Followers:  toIDs(d.Followers),
		Followings: toIDs(d.Followings),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type UserMongoStorage struct {
	users *mongo.Collection
}

func NewUserMongoStorage(db *mongo.Database) *UserMongoStorage {
	return &UserMongoStorage{users: db.Collection(usersCollection)}
}

func (s *UserMongoStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	doc := &userDocument{
		ID:         bson.NewObjectID(),
		Name:       user.Name,
		Email:      user.Email,
		Password:   user.Password,
		Posts:      []bson.ObjectID{},
		Comments:   []bson.ObjectID{},
		Followers:  []bson.ObjectID{},
		Followings: []bson.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, errors.Wrapf(storage.ErrDuplicate, "user with email %s", user.Email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return doc.toModel(), nil
}

func (s *UserMongoStorage) GetUserByID(ctx context.Context, id models.ID) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "user %s", id)
	}

	return doc.toModel(), nil
}

func (s *UserMongoStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "user with email %s", email)
	}

	return doc.toModel(), nil
}

func (s *UserMongoStorage) GetUsersByIDs(ctx context.Context, ids []models.ID) ([]*models.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.User{}, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode users")
	}

	byID := make(map[models.ID]*models.User, len(docs))
	for i := range docs {
		u := docs[i].toModel()
		byID[u.ID] = u
	}

	users := make([]*models.User, 0, len(docs))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}

	return users, nil
}

func (s *UserMongoStorage) AddPost(ctx context.Context, userID, postID models.ID) error {
	return s.updateList(ctx, userID, "$addToSet", "posts", postID)
}

func (s *UserMongoStorage) RemovePost(ctx context.Context, userID, postID models.ID) error {
	return s.updateList(ctx, userID, "$pull", "posts", postID)
}

func (s *UserMongoStorage) AddComment(ctx context.Context, userID, commentID models.ID) error {
	return s.updateList(ctx, userID, "$addToSet", "comments", commentID)
}

func (s *UserMongoStorage) RemoveComment(ctx context.Context, userID, commentID models.ID) error {
	return s.updateList(ctx, userID, "$pull", "comments", commentID)
}

func (s *UserMongoStorage) AddFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.updateList(ctx, userID, "$addToSet", "followings", targetID)
}

func (s *UserMongoStorage) RemoveFollowing(ctx context.Context, userID, targetID models.ID) error {
	return s.updateList(ctx, userID, "$pull", "followings", targetID)
}

func (s *UserMongoStorage) AddFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.updateList(ctx, userID, "$addToSet", "followers", followerID)
}

func (s *UserMongoStorage) RemoveFollower(ctx context.Context, userID, followerID models.ID) error {
	return s.updateList(ctx, userID, "$pull", "followers", followerID)
}

// updateList $addToSet / $pull одного идентификатора в массиве ссылок
func (s *UserMongoStorage) updateList(ctx context.Context, userID models.ID, op, field string, ref models.ID) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	refID, err := objectID(ref)
	if err != nil {
		return err
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		op:     bson.M{field: refID},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to update %s of user %s", field, userID)
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(storage.ErrNotFound, "user %s", userID)
	}

	return nil
}
