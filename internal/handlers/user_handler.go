package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicware/doctor-portal-api/internal/auth"
	"github.com/clinicware/doctor-portal-api/internal/middleware"
	"github.com/clinicware/doctor-portal-api/internal/models"
)

type UpsertUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpsertUser creates or updates the profile for the email in the path
// and issues a fresh token. The role is never settable here; elevation
// goes through MakeAdmin.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	set := bson.M{"email": email}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		set["password"] = hashed
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	if _, err := h.Cols.Users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts); err != nil {
		h.Log.Error("user upsert failed", slog.String("email", email), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
		return
	}

	var user models.User
	if err := h.Cols.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	token, err := h.Auth.Sign(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Login verifies a stored password and issues the same 1-day token the
// upsert path does.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	var user models.User
	err := h.Cols.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || user.Password == "" || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.Sign(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := h.requestCtx(c)
	defer cancel()

	cursor, err := h.Cols.Users.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// MakeAdmin grants the admin role. The route is guarded by both stages
// of the access guard.
func (h *Handler) MakeAdmin(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	result, err := h.Cols.Users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		h.Log.Error("admin grant failed", slog.String("email", email), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.ModifiedCount})
}

// CheckAdmin reports whether a user holds the admin role. Public by
// policy: it discloses only a boolean.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	var user models.User
	err := h.Cols.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
}

// authorizedEmail returns the email the auth middleware verified.
func authorizedEmail(c *gin.Context) string {
	return c.GetString(middleware.ContextEmailKey)
}
