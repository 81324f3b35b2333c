package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Description string             `bson:"description" json:"description"`
	Picture     string             `bson:"picture" json:"picture"`
	ImageID     string             `bson:"imageId" json:"imageId"`
	AuthorID    primitive.ObjectID `bson:"author" json:"authorId"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt" json:"updatedAt"`

	Author *PublicUser `bson:"-" json:"author,omitempty"` // populated on reads
}
