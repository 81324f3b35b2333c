package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkwell/assets"
	"inkwell/database"
	"inkwell/middleware"
	"inkwell/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePost creates a post for the authenticated user. The picture is
// mandatory: no upload, no post.
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	header, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Post picture is required"})
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	description := c.PostForm("description")
	if title == "" || content == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, content and description are required"})
		return
	}

	if err := assets.ValidateStrict(header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	file, err := header.Open()
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Failed to upload post picture", err)
		return
	}
	defer file.Close()

	asset, err := h.Uploads.Upload(ctx, file, "posts")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Failed to upload post picture", err)
		return
	}

	now := time.Now().Unix()
	post := &models.Post{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Content:     content,
		Description: description,
		Picture:     asset.URL,
		ImageID:     asset.FileID,
		AuthorID:    userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Posts.Create(ctx, post); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error creating post", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetAllPosts returns every post, newest first, with author populated.
// Public route.
func (h *Handler) GetAllPosts(c *gin.Context) {
	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	posts, err := h.Posts.FindAll(ctx)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching posts", err)
		return
	}

	if err := h.populateAuthors(c, posts); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching posts", err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPostByID returns a single post with author populated. Public.
func (h *Handler) GetPostByID(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	post, err := h.Posts.FindByID(ctx, postID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching post", err)
		return
	}

	posts := []models.Post{*post}
	if err := h.populateAuthors(c, posts); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching post", err)
		return
	}

	c.JSON(http.StatusOK, posts[0])
}

// GetPostsByUser returns a user's posts, newest first. Public.
func (h *Handler) GetPostsByUser(c *gin.Context) {
	authorID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	posts, err := h.Posts.FindByAuthor(ctx, authorID)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching user posts", err)
		return
	}

	if err := h.populateAuthors(c, posts); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error fetching user posts", err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// UpdatePost edits text fields and optionally replaces the image.
// Owner only. Empty text fields keep their current value. The new
// image is uploaded before the old one is discarded.
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	post, err := h.Posts.FindByID(ctx, postID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error updating post", err)
		return
	}

	if !authorizeOwner(c.GetString(middleware.ContextUserID), post.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this post"})
		return
	}

	fields := bson.M{"updatedAt": time.Now().Unix()}
	if title := c.PostForm("title"); title != "" {
		fields["title"] = title
	}
	if content := c.PostForm("content"); content != "" {
		fields["content"] = content
	}
	if description := c.PostForm("description"); description != "" {
		fields["description"] = description
	}

	var oldImageID string
	if header, err := c.FormFile("picture"); err == nil {
		if err := assets.ValidateStrict(header); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		file, err := header.Open()
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Failed to upload post picture", err)
			return
		}
		defer file.Close()

		asset, err := h.Uploads.Upload(ctx, file, "posts")
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Failed to upload post picture", err)
			return
		}

		fields["picture"] = asset.URL
		fields["imageId"] = asset.FileID
		oldImageID = post.ImageID
	}

	updated, err := h.Posts.Update(ctx, postID, fields)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error updating post", err)
		return
	}

	// Old asset goes only after both the upload and the record update
	// succeeded; a delete failure is logged, not surfaced.
	h.discardAsset(ctx, oldImageID)

	posts := []models.Post{*updated}
	if err := h.populateAuthors(c, posts); err == nil {
		updated = &posts[0]
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePost removes a post and its asset. Owner only. The asset
// discard is best-effort; the record delete stands either way.
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	post, err := h.Posts.FindByID(ctx, postID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error deleting post", err)
		return
	}

	if !authorizeOwner(c.GetString(middleware.ContextUserID), post.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this post"})
		return
	}

	h.discardAsset(ctx, post.ImageID)

	if err := h.Posts.Delete(ctx, postID); err != nil && !errors.Is(err, database.ErrNotFound) {
		h.respondError(c, http.StatusInternalServerError, "Error deleting post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// populateAuthors attaches the public author view to each post with a
// single user lookup for the whole set.
func (h *Handler) populateAuthors(c *gin.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	seen := map[string]bool{}
	ids := []primitive.ObjectID{}
	for _, post := range posts {
		if !seen[post.AuthorID.Hex()] {
			seen[post.AuthorID.Hex()] = true
			ids = append(ids, post.AuthorID)
		}
	}

	users, err := h.Users.FindManyByID(ctx, ids)
	if err != nil {
		return err
	}

	for i := range posts {
		if user, ok := users[posts[i].AuthorID.Hex()]; ok {
			public := user.Public()
			posts[i].Author = &public
		}
	}
	return nil
}
