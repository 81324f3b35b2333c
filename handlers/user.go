package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkwell/assets"
	"inkwell/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	user, err := h.Users.FindByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error getting user profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes username/email and optionally replaces the
// profile picture. The new image is uploaded before the old one is
// discarded, so a failed upload leaves the old asset referenced and
// intact.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	if username != "" || email != "" {
		taken, err := h.Users.TakenByOther(ctx, userID, username, email)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusInternalServerError, "Error updating profile", err)
			return
		}
		if taken != nil {
			message := "Username already in use"
			if email != "" && taken.Email == email {
				message = "Email already in use"
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": message})
			return
		}
	}

	current, err := h.Users.FindByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error updating profile", err)
		return
	}

	fields := bson.M{"updatedAt": time.Now().Unix()}
	if username != "" {
		fields["username"] = username
	}
	if email != "" {
		fields["email"] = email
	}

	var oldImageID string
	if header, err := c.FormFile("picture"); err == nil {
		if err := assets.ValidateStrict(header); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		file, err := header.Open()
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Failed to upload profile picture", err)
			return
		}
		defer file.Close()

		asset, err := h.Uploads.Upload(ctx, file, "profiles")
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Failed to upload profile picture", err)
			return
		}

		fields["picture"] = asset.URL
		fields["imageId"] = asset.FileID
		if current.ImageID != nil {
			oldImageID = *current.ImageID
		}
	}

	updated, err := h.Users.Update(ctx, userID, fields)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error updating profile", err)
		return
	}

	// The replaced asset is discarded only after the record update
	// succeeded; a host failure here is logged and does not undo it.
	h.discardAsset(ctx, oldImageID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// DeleteAccount removes the user and everything it owns: its profile
// asset, every authored post and each post's asset, then the record
// itself. Asset discards are attempted for every discovered object but
// the sequence is not transactional; a mid-cascade crash can leave
// remote orphans, which is the accepted failure mode.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	user, err := h.Users.FindByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error deleting account", err)
		return
	}

	if user.ImageID != nil {
		h.discardAsset(ctx, *user.ImageID)
	}

	posts, err := h.Posts.FindByAuthor(ctx, userID)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error deleting account", err)
		return
	}

	for _, post := range posts {
		h.discardAsset(ctx, post.ImageID)
	}

	if _, err := h.Posts.DeleteByAuthor(ctx, userID); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Error deleting account", err)
		return
	}

	if err := h.Users.Delete(ctx, userID); err != nil && !errors.Is(err, database.ErrNotFound) {
		h.respondError(c, http.StatusInternalServerError, "Error deleting account", err)
		return
	}

	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
