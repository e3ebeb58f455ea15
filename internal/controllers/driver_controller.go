package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet_desk/internal/events"
	"fleet_desk/internal/models"
	"fleet_desk/internal/repository"
	"fleet_desk/internal/storage"
)

// Multipart field names of the add-driver form.
var (
	driverTextFields  = []string{"name", "mobileNumber", "password", "city", "state", "vehicleType"}
	driverImageFields = []string{"photo", "aadharCard", "license"}
)

const maxDriverImageSize = 10 << 20

// CreateDriver registers a driver from the multipart add-driver form. The
// driver's mobile number doubles as the login user name.
func (ctl *Controller) CreateDriver(c *gin.Context) {
	values := make(map[string]string, len(driverTextFields))
	var missing []string
	for _, field := range driverTextFields {
		v := strings.TrimSpace(c.PostForm(field))
		if v == "" {
			missing = append(missing, field)
		}
		values[field] = v
	}

	files := make(map[string]*multipart.FileHeader, len(driverImageFields))
	for _, field := range driverImageFields {
		fh, err := c.FormFile(field)
		if err != nil {
			missing = append(missing, field)
			continue
		}
		files[field] = fh
	}

	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields: " + strings.Join(missing, ", ")})
		return
	}
	if !models.IsVehicleType(values["vehicleType"]) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicleType"})
		return
	}
	for field, fh := range files {
		if fh.Size > maxDriverImageSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("%s exceeds %d bytes", field, maxDriverImageSize),
			})
			return
		}
	}

	ctx := c.Request.Context()
	_, err := ctl.Users.FindByUserName(ctx, values["mobileNumber"])
	switch {
	case err == nil:
		c.JSON(http.StatusConflict, gin.H{"error": "driver already exists"})
		return
	case !errors.Is(err, repository.ErrNotFound):
		storeError(c, err, "driver")
		return
	}

	hashedPassword, err := hashPassword(values["password"])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	var stored []string
	urls := make(map[string]string, len(files))
	for field, fh := range files {
		name := storage.ObjectName(field, fh.Filename)
		url, err := ctl.saveUpload(c, name, fh)
		if err != nil {
			logrus.WithError(err).WithField("field", field).Error("Failed to store driver document")
			ctl.removeUploads(c, stored)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store " + field})
			return
		}
		stored = append(stored, name)
		urls[field] = url
	}

	user := models.User{
		UserName: values["mobileNumber"],
		Password: hashedPassword,
		Role:     models.RoleDriver,
	}
	driver := models.Driver{
		Name:         values["name"],
		MobileNumber: values["mobileNumber"],
		City:         values["city"],
		State:        values["state"],
		VehicleType:  values["vehicleType"],
		Photo:        urls["photo"],
		AadharCard:   urls["aadharCard"],
		License:      urls["license"],
	}
	if err := ctl.Users.CreateDriver(ctx, &user, &driver); err != nil {
		ctl.removeUploads(c, stored)
		storeError(c, err, "driver")
		return
	}

	ctl.publish(events.TopicDrivers, "created", fmt.Sprint(driver.ID))
	c.JSON(http.StatusCreated, gin.H{"data": driver})
}

func (ctl *Controller) ListDrivers(c *gin.Context) {
	drivers, err := ctl.Users.ListDrivers(c.Request.Context())
	if err != nil {
		storeError(c, err, "drivers")
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

func (ctl *Controller) saveUpload(c *gin.Context, name string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	url, err := ctl.Uploads.Save(c.Request.Context(), name, f, fh.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	if ctl.Metrics != nil {
		ctl.Metrics.UploadsTotal.Inc()
	}
	return url, nil
}

// removeUploads deletes documents stored for a driver that was not created.
func (ctl *Controller) removeUploads(c *gin.Context, names []string) {
	for _, name := range names {
		if err := ctl.Uploads.Delete(c.Request.Context(), name); err != nil {
			logrus.WithError(err).WithField("object", name).Warn("Failed to remove orphaned driver document")
		}
	}
}
