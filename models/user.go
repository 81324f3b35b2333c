package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	// Picture and ImageID are set together or not at all: the URL is
	// what clients render, the file ID is what the asset host deletes by.
	Picture *string `bson:"picture,omitempty" json:"picture,omitempty"`
	ImageID *string `bson:"imageId,omitempty" json:"-"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the author/profile view exposed on API responses.
type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Picture  *string            `json:"picture,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Picture:  u.Picture,
	}
}
