package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicware/doctor-portal-api/internal/models"
)

type CreateBookingRequest struct {
	BookingName string  `json:"bookingName" binding:"required"`
	PatientName string  `json:"patientName" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone"`
	Price       float64 `json:"price"`
}

// CreateBooking inserts a booking unless the patient already holds one
// for the same appointment type on the same date. The time is
// deliberately not part of the uniqueness key: one patient, one booking
// per service per day. A unique compound index backs the check, so a
// concurrent duplicate surfaces as a duplicate key error and gets the
// same conflict response.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	uniqueness := bson.M{
		"bookingName": req.BookingName,
		"patientName": req.PatientName,
		"date":        req.Date,
	}

	var existing models.Booking
	err := h.Cols.Bookings.FindOne(ctx, uniqueness).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing bookings"})
		return
	}

	booking := models.Booking{
		BookingName: req.BookingName,
		PatientName: req.PatientName,
		Date:        req.Date,
		Time:        req.Time,
		Email:       req.Email,
		Phone:       req.Phone,
		Price:       req.Price,
	}

	result, err := h.Cols.Bookings.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race to a concurrent request for the same tuple.
			if ferr := h.Cols.Bookings.FindOne(ctx, uniqueness).Decode(&existing); ferr == nil {
				c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
				return
			}
		}
		h.Log.Error("booking insert failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}

	if err := h.Cache.Delete(ctx, availabilityKey(req.Date)); err != nil {
		h.Log.Warn("availability cache invalidation failed", slog.String("date", req.Date), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// ListBookings returns the bookings for the email in the query, which
// must be the email the presented token binds.
func (h *Handler) ListBookings(c *gin.Context) {
	email := c.Query("email")
	if email != authorizedEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	cursor, err := h.Cols.Bookings.Find(ctx, bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
