package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
)

type technicianInput struct {
	TechnicianType  string `json:"technicianType" binding:"required"`
	Name            string `json:"name" binding:"required"`
	City            string `json:"city" binding:"required"`
	MobileNumber    string `json:"mobileNumber" binding:"required"`
	AlternateNumber string `json:"alternateNumber"`
	VehicleType     string `json:"vehicleType" binding:"required"`
}

func (in technicianInput) apply(t *models.Technician) {
	t.TechnicianType = in.TechnicianType
	t.Name = in.Name
	t.City = in.City
	t.MobileNumber = in.MobileNumber
	t.AlternateNumber = in.AlternateNumber
	t.VehicleType = in.VehicleType
}

// ListTechnicians returns the whole collection; the client filters it.
func (ctl *Controller) ListTechnicians(c *gin.Context) {
	technicians, err := ctl.Technicians.List(c.Request.Context())
	if err != nil {
		storeError(c, err, "technicians")
		return
	}
	if technicians == nil {
		technicians = []models.Technician{}
	}
	c.JSON(http.StatusOK, gin.H{"data": technicians})
}

func (ctl *Controller) CreateTechnician(c *gin.Context) {
	var input technicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician input: " + err.Error()})
		return
	}
	if !models.IsVehicleType(input.VehicleType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicleType"})
		return
	}

	var technician models.Technician
	input.apply(&technician)
	if err := ctl.Technicians.Create(c.Request.Context(), &technician); err != nil {
		storeError(c, err, "technician")
		return
	}

	ctl.publish(events.TopicTechnicians, "created", technician.ID)
	c.JSON(http.StatusCreated, gin.H{"data": technician})
}

// UpdateTechnician edits the technician named by ?technicianId=.
func (ctl *Controller) UpdateTechnician(c *gin.Context) {
	id := c.Query("technicianId")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technicianId is required"})
		return
	}

	var input technicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid technician input: " + err.Error()})
		return
	}
	if !models.IsVehicleType(input.VehicleType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicleType"})
		return
	}

	ctx := c.Request.Context()
	technician, err := ctl.Technicians.Get(ctx, id)
	if err != nil {
		storeError(c, err, "technician")
		return
	}
	input.apply(technician)
	if err := ctl.Technicians.Update(ctx, technician); err != nil {
		storeError(c, err, "technician")
		return
	}

	ctl.publish(events.TopicTechnicians, "updated", technician.ID)
	c.JSON(http.StatusOK, gin.H{"data": technician})
}

func (ctl *Controller) DeleteTechnician(c *gin.Context) {
	id := c.Query("technicianId")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technicianId is required"})
		return
	}

	if err := ctl.Technicians.Delete(c.Request.Context(), id); err != nil {
		storeError(c, err, "technician")
		return
	}

	ctl.publish(events.TopicTechnicians, "deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Technician deleted"})
}
