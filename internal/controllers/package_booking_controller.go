package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
)

type packageBookingInput struct {
	Vehicle              string    `json:"vehicle" binding:"required"`
	OtherVehicle         string    `json:"otherVehicle"`
	CustomerName         string    `json:"customerName" binding:"required"`
	MobileNumber         string    `json:"mobileNumber" binding:"required"`
	AlternateNumber      string    `json:"alternateNumber"`
	KmStarting           float64   `json:"kmStarting"`
	PerKmRateInINR       float64   `json:"perKmRateInINR"`
	AdvanceAmountInINR   float64   `json:"advanceAmountInINR"`
	RemainingAmountInINR float64   `json:"remainingAmountInINR"`
	DeparturePlace       string    `json:"departurePlace" binding:"required"`
	DestinationPlace     string    `json:"destinationPlace" binding:"required"`
	DepartureDate        time.Time `json:"departureDate"`
	DepartureTime        time.Time `json:"departureTime"`
	ReturnDate           time.Time `json:"returnDate"`
	ReturnTime           time.Time `json:"returnTime"`
	TollInINR            float64   `json:"tollInINR"`
	OtherStateTaxInINR   float64   `json:"otherStateTaxInINR"`
	Instructions         string    `json:"instructions"`
	Note                 string    `json:"note"`
}

func (ctl *Controller) GetPackageBooking(c *gin.Context) {
	booking, err := ctl.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "package booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": booking})
}

func (ctl *Controller) ListPackageBookings(c *gin.Context) {
	bookings, err := ctl.Bookings.List(c.Request.Context())
	if err != nil {
		storeError(c, err, "package bookings")
		return
	}
	if bookings == nil {
		bookings = []models.PackageBooking{}
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

func (ctl *Controller) CreatePackageBooking(c *gin.Context) {
	var in packageBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package booking input: " + err.Error()})
		return
	}
	if in.DepartureDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departureDate is required"})
		return
	}
	if !in.ReturnDate.IsZero() && in.ReturnDate.Before(in.DepartureDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "returnDate is before departureDate"})
		return
	}

	booking := models.PackageBooking{
		Vehicle:              in.Vehicle,
		OtherVehicle:         in.OtherVehicle,
		CustomerName:         in.CustomerName,
		MobileNumber:         in.MobileNumber,
		AlternateNumber:      in.AlternateNumber,
		KmStarting:           in.KmStarting,
		PerKmRateInINR:       in.PerKmRateInINR,
		AdvanceAmountInINR:   in.AdvanceAmountInINR,
		RemainingAmountInINR: in.RemainingAmountInINR,
		DeparturePlace:       in.DeparturePlace,
		DestinationPlace:     in.DestinationPlace,
		DepartureDate:        in.DepartureDate,
		DepartureTime:        in.DepartureTime,
		ReturnDate:           in.ReturnDate,
		ReturnTime:           in.ReturnTime,
		TollInINR:            in.TollInINR,
		OtherStateTaxInINR:   in.OtherStateTaxInINR,
		Instructions:         in.Instructions,
		Note:                 in.Note,
	}
	if err := ctl.Bookings.Create(c.Request.Context(), &booking); err != nil {
		storeError(c, err, "package booking")
		return
	}

	ctl.publish(events.TopicPackageBookings, "created", booking.ID)
	c.JSON(http.StatusCreated, gin.H{"data": booking})
}
