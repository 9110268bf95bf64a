package mongodb

import (
	"context"
	"time"

	"github.com/VitaminP8/flock/internal/storage"
	"github.com/VitaminP8/flock/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type postDocument struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	Tweet     string          `bson:"tweet"`
	CreatedBy bson.ObjectID   `bson:"createdBy"`
	Comments  []bson.ObjectID `bson:"comments"`
	CreatedAt time.Time       `bson:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

func (d *postDocument) toModel() *models.Post {
	return &models.Post{
		ID:        models.ID(d.ID.Hex()),
		Tweet:     d.Tweet,
		CreatedBy: models.ID(d.CreatedBy.Hex()),
		Comments:  toIDs(d.Comments),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type PostMongoStorage struct {
	posts *mongo.Collection
}

func NewPostMongoStorage(db *mongo.Database) *PostMongoStorage {
	return &PostMongoStorage{posts: db.Collection(postsCollection)}
}

func (s *PostMongoStorage) CreatePost(ctx context.Context, createdBy models.ID, tweet string) (*models.Post, error) {
	author, err := objectID(createdBy)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &postDocument{
		ID:        bson.NewObjectID(),
		Tweet:     tweet,
		CreatedBy: author,
		Comments:  []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "could not create post")
	}

	return doc.toModel(), nil
}

func (s *PostMongoStorage) GetPostByID(ctx context.Context, id models.ID) (*models.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "post %s", id)
	}

	return doc.toModel(), nil
}

func (s *PostMongoStorage) GetPostsByIDs(ctx context.Context, ids []models.ID) ([]*models.Post, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.Post{}, nil
	}

	docs, err := s.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[models.ID]*models.Post, len(docs))
	for _, p := range docs {
		byID[p.ID] = p
	}

	posts := make([]*models.Post, 0, len(docs))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}

	return posts, nil
}

func (s *PostMongoStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *PostMongoStorage) UpdatePostTweet(ctx context.Context, id models.ID, tweet string) (*models.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"tweet": tweet, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "could not update post %s", id)
	}

	return doc.toModel(), nil
}

func (s *PostMongoStorage) DeletePostByID(ctx context.Context, id models.ID) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "could not delete post %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(storage.ErrNotFound, "post %s", id)
	}

	return nil
}

func (s *PostMongoStorage) AddComment(ctx context.Context, postID, commentID models.ID) error {
	return s.updateComments(ctx, postID, "$addToSet", commentID)
}

func (s *PostMongoStorage) RemoveComment(ctx context.Context, postID, commentID models.ID) error {
	return s.updateComments(ctx, postID, "$pull", commentID)
}

func (s *PostMongoStorage) updateComments(ctx context.Context, postID models.ID, op string, commentID models.ID) error {
	oid, err := objectID(postID)
	if err != nil {
		return err
	}
	cid, err := objectID(commentID)
	if err != nil {
		return err
	}

	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		op:     bson.M{"comments": cid},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return errors.Wrapf(err, "could not update comments of post %s", postID)
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(storage.ErrNotFound, "post %s", postID)
	}

	return nil
}

func (s *PostMongoStorage) find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) ([]*models.Post, error) {
	cursor, err := s.posts.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not get posts")
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "could not decode posts")
	}

	posts := make([]*models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}
