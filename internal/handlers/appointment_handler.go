package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicware/doctor-portal-api/internal/models"
	"github.com/clinicware/doctor-portal-api/internal/schedule"
)

// contentTypeJSON matches what gin's c.JSON emits.
const contentTypeJSON = "application/json; charset=utf-8"

// ListAppointments returns the appointment types. By default only the
// names are projected; ?full=true returns the complete documents.
func (h *Handler) ListAppointments(c *gin.Context) {
	ctx, cancel := h.requestCtx(c)
	defer cancel()

	findOpts := options.Find()
	if c.Query("full") != "true" {
		findOpts.SetProjection(bson.M{"name": 1})
	}

	cursor, err := h.Cols.Appointments.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}
	defer cursor.Close(ctx)

	appointments := make([]bson.M, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAvailable computes the open slots per appointment type for one
// date: the full slot templates minus the times already booked that
// day. Responses are cached per date until a booking invalidates them.
func (h *Handler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	key := availabilityKey(date)
	if cached, ok, err := h.Cache.Get(ctx, key); err == nil && ok {
		c.Data(http.StatusOK, contentTypeJSON, cached)
		return
	}

	cursor, err := h.Cols.Appointments.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}
	var appointments []models.AppointmentType
	if err := cursor.All(ctx, &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode appointments"})
		return
	}

	bookingCursor, err := h.Cols.Bookings.Find(ctx, bson.M{"date": date})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	var bookings []models.Booking
	if err := bookingCursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}

	available := schedule.Available(appointments, bookings)

	// Cached and fresh responses are served from the same payload so
	// they stay byte-identical, headers included.
	payload, err := json.Marshal(available)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode availability"})
		return
	}
	if err := h.Cache.Set(ctx, key, payload, h.CacheTTL); err != nil {
		h.Log.Warn("availability cache set failed", slog.String("date", date), slog.String("error", err.Error()))
	}

	c.Data(http.StatusOK, contentTypeJSON, payload)
}
