package database

import (
	"context"

	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostStore adapts the posts collection to the handler layer.
type PostStore struct {
	coll *mongo.Collection
}

func NewPostStore(m *Mongo) *PostStore {
	return &PostStore{coll: m.Posts}
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *PostStore) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"author": authorID})
}

func (s *PostStore) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Post, error) {
	res := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var post models.Post
	err := res.Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByAuthor removes every post authored by the user. Part of the
// account deletion cascade; asset discards happen before this call.
func (s *PostStore) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
