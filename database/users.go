package database

import (
	"context"

	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore adapts the users collection to the handler layer.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(m *Mongo) *UserStore {
	return &UserStore{coll: m.Users}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail returns any user holding either value. Used at
// registration to report which field is already taken.
func (s *UserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}

	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TakenByOther reports whether a different user already holds the
// username or email. Empty values are not matched.
func (s *UserStore) TakenByOther(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, ErrNotFound
	}

	filter := bson.M{"$and": bson.A{
		bson.M{"_id": bson.M{"$ne": id}},
		bson.M{"$or": or},
	}}

	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindManyByID loads users for a set of ids, keyed by hex id. Used to
// populate post authors without a per-post query.
func (s *UserStore) FindManyByID(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		u := user
		users[u.ID.Hex()] = &u
	}
	return users, cursor.Err()
}

func (s *UserStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	res := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	err := res.Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
