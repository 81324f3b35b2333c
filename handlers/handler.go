package handlers

import (
	"context"
	"time"

	"inkwell/assets"
	"inkwell/config"
	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the credential-store surface the handlers consume.
// database.UserStore implements it; tests substitute mocks.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	TakenByOther(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error)
	FindManyByID(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PostStore is the content-store surface the handlers consume.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
}

// Handler carries every dependency the request handlers need. Built
// once in main and shared; no ambient singletons.
type Handler struct {
	Users   UserStore
	Posts   PostStore
	Uploads assets.Uploader
	Cfg     *config.Config
}

func New(users UserStore, posts PostStore, uploads assets.Uploader, cfg *config.Config) *Handler {
	return &Handler{Users: users, Posts: posts, Uploads: uploads, Cfg: cfg}
}

const storeTimeout = 10 * time.Second

func (h *Handler) opCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, storeTimeout)
}
