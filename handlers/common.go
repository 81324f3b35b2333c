package handlers

import (
	"context"
	"log"
	"net/http"

	"inkwell/middleware"
	"inkwell/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authorizeOwner is the ownership gate: only the resource owner may
// mutate or delete it. Callers map a false result to 403; missing
// authentication (401) and missing resource (404) are decided before
// this point, keeping the three outcomes distinct.
func authorizeOwner(actingID string, ownerID primitive.ObjectID) bool {
	return actingID == ownerID.Hex()
}

// actingUserID returns the authenticated user's id, set by the auth
// middleware.
func actingUserID(c *gin.Context) (primitive.ObjectID, bool) {
	hex := c.GetString(middleware.ContextUserID)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError writes a JSON error body. The underlying error detail
// is included only outside release mode.
func (h *Handler) respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil && !h.Cfg.Production() {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// setTokenCookie delivers the session credential as an HTTP-only,
// strict same-site cookie, secure in production.
func (h *Handler) setTokenCookie(c *gin.Context, tokenString string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", tokenString, int(token.TTL.Seconds()), "/", "", h.Cfg.Production(), true)
}

// clearTokenCookie expires the session cookie. Safe to call when no
// cookie is present.
func (h *Handler) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", h.Cfg.Production(), true)
}

// discardAsset deletes a remote asset best-effort: a host failure is
// logged and never rolls back the owner-side mutation that triggered it.
func (h *Handler) discardAsset(ctx context.Context, fileID string) {
	if fileID == "" {
		return
	}
	if err := h.Uploads.Delete(ctx, fileID); err != nil {
		log.Printf("Error deleting asset %s: %v", fileID, err)
	}
}
