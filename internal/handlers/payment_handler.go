package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicware/doctor-portal-api/internal/models"
)

type ConfirmPaymentRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	Price         float64 `json:"price"`
	Email         string  `json:"email"`
}

// ConfirmPayment records a completed charge and marks the booking paid.
// The payment record is written first; the booking update follows with
// no compensation if it fails, each failure mapping to a 500.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	payment := models.Payment{
		BookingID:     bookingID.Hex(),
		TransactionID: req.TransactionID,
		Price:         req.Price,
		Email:         req.Email,
	}
	if _, err := h.Cols.Payments.InsertOne(ctx, payment); err != nil {
		h.Log.Error("payment insert failed", slog.String("bookingId", bookingID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	update := bson.M{"$set": bson.M{"paid": true, "transactionId": req.TransactionID}}
	result, err := h.Cols.Bookings.UpdateOne(ctx, bson.M{"_id": bookingID}, update)
	if err != nil {
		h.Log.Error("booking payment update failed", slog.String("bookingId", bookingID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var booking models.Booking
	if err := h.Cols.Bookings.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetPayment fetches the booking a payment page renders, by id.
func (h *Handler) GetPayment(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	var booking models.Booking
	err = h.Cols.Bookings.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// CreatePaymentIntent asks the gateway for a client secret covering the
// price, converted to cents.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	amount := int64(math.Round(req.Price * 100))
	secret, err := h.Gateway.CreateIntent(ctx, amount)
	if err != nil {
		h.Log.Error("payment intent creation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
