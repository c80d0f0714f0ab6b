package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clinicware/doctor-portal-api/internal/models"
)

type AddDoctorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Specialty string `json:"specialty" binding:"required"`
	Image     string `json:"img"`
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req AddDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	doctor := models.Doctor{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Image:     req.Image,
	}

	result, err := h.Cols.Doctors.InsertOne(ctx, doctor)
	if err != nil {
		h.Log.Error("doctor insert failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add doctor"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid
	}

	c.JSON(http.StatusCreated, doctor)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	ctx, cancel := h.requestCtx(c)
	defer cancel()

	cursor, err := h.Cols.Doctors.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode doctors"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
		return
	}

	ctx, cancel := h.requestCtx(c)
	defer cancel()

	result, err := h.Cols.Doctors.DeleteOne(ctx, bson.M{"_id": doctorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": result.DeletedCount})
}
