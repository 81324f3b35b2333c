package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkwell/assets"
	"inkwell/database"
	"inkwell/models"
	"inkwell/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates an account from a multipart form (username, email,
// password, optional `picture` file) and issues a session credential.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide all required fields",
		})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	existing, err := h.Users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.respondError(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}
	if existing != nil {
		message := "Username already taken"
		if existing.Email == email {
			message = "Email already registered"
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
		return
	}

	// Profile picture is optional at registration. Note the loose
	// any-image filter here versus the strict one on post/profile
	// updates; observed behavior, kept as is.
	var picture, imageID *string
	if header, err := c.FormFile("picture"); err == nil {
		if err := assets.ValidateAnyImage(header); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
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
		picture = &asset.URL
		imageID = &asset.FileID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	now := time.Now().Unix()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		Picture:   picture,
		ImageID:   imageID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	tokenString, err := token.Issue(user.ID.Hex(), h.Cfg.JWTSecret)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}
	h.setTokenCookie(c, tokenString)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    user.Public(),
		"token":   tokenString,
	})
}

// Login verifies username/password and issues a fresh credential.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide both username and password",
		})
		return
	}

	ctx, cancel := h.opCtx(c.Request.Context())
	defer cancel()

	user, err := h.Users.FindByUsername(ctx, req.Username)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	tokenString, err := token.Issue(user.ID.Hex(), h.Cfg.JWTSecret)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}
	h.setTokenCookie(c, tokenString)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user.Public(),
		"token":   tokenString,
	})
}

// Logout clears the session cookie. The credential itself stays valid
// until expiry; there is no server-side revocation list. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}
