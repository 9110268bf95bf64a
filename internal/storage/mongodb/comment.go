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

type commentDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Comment   string        `bson:"comment"`
	CreatedBy bson.ObjectID `bson:"createdBy"`
	PostID    bson.ObjectID `bson:"postId"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *commentDocument) toModel() *models.Comment {
	return &models.Comment{
		ID:        models.ID(d.ID.Hex()),
		Comment:   d.Comment,
		CreatedBy: models.ID(d.CreatedBy.Hex()),
		PostID:    models.ID(d.PostID.Hex()),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CommentMongoStorage struct {
	comments *mongo.Collection
}

func NewCommentMongoStorage(db *mongo.Database) *CommentMongoStorage {
	return &CommentMongoStorage{comments: db.Collection(commentsCollection)}
}

func (s *CommentMongoStorage) CreateComment(ctx context.Context, createdBy, postID models.ID, text string) (*models.Comment, error) {
	author, err := objectID(createdBy)
	if err != nil {
		return nil, err
	}
	post, err := objectID(postID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &commentDocument{
		ID:        bson.NewObjectID(),
		Comment:   text,
		CreatedBy: author,
		PostID:    post,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "could not create comment")
	}

	return doc.toModel(), nil
}

func (s *CommentMongoStorage) GetCommentByID(ctx context.Context, id models.ID) (*models.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDocument
	if err := s.comments.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "comment %s", id)
	}

	return doc.toModel(), nil
}

func (s *CommentMongoStorage) GetCommentsByIDs(ctx context.Context, ids []models.ID) ([]*models.Comment, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.Comment{}, nil
	}

	cursor, err := s.comments.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, errors.Wrap(err, "could not get comments")
	}
	defer cursor.Close(ctx)

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "could not decode comments")
	}

	byID := make(map[models.ID]*models.Comment, len(docs))
	for i := range docs {
		c := docs[i].toModel()
		byID[c.ID] = c
	}

	comments := make([]*models.Comment, 0, len(docs))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			comments = append(comments, c)
		}
	}

	return comments, nil
}

func (s *CommentMongoStorage) UpdateCommentText(ctx context.Context, id models.ID, text string) (*models.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDocument
	err = s.comments.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"comment": text, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "could not update comment %s", id)
	}

	return doc.toModel(), nil
}

func (s *CommentMongoStorage) DeleteCommentByID(ctx context.Context, id models.ID) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.comments.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "could not delete comment %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(storage.ErrNotFound, "comment %s", id)
	}

	return nil
}
