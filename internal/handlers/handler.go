package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicware/doctor-portal-api/internal/auth"
	"github.com/clinicware/doctor-portal-api/internal/cache"
	"github.com/clinicware/doctor-portal-api/internal/db"
	"github.com/clinicware/doctor-portal-api/internal/middleware"
	"github.com/clinicware/doctor-portal-api/internal/models"
	"github.com/clinicware/doctor-portal-api/internal/payments"
)

const dbTimeout = 5 * time.Second

type Handler struct {
	Cols     *db.Collections
	Auth     *auth.Manager
	Cache    cache.Cache
	Gateway  payments.IntentCreator
	Log      *slog.Logger
	CacheTTL time.Duration
}

func NewHandler(cols *db.Collections, manager *auth.Manager, store cache.Cache, gateway payments.IntentCreator, log *slog.Logger, cacheTTL time.Duration) *Handler {
	return &Handler{
		Cols:     cols,
		Auth:     manager,
		Cache:    store,
		Gateway:  gateway,
		Log:      log,
		CacheTTL: cacheTTL,
	}
}

func (h *Handler) requestCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

// RoleLookup backs the admin guard with the user collection. An email
// with no user document resolves to the empty role.
func (h *Handler) RoleLookup() middleware.RoleLookup {
	return func(ctx context.Context, email string) (string, error) {
		var user models.User
		err := h.Cols.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
}

func availabilityKey(date string) string {
	return "available:" + date
}
