package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/config"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/excel"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/models"
	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/service/importer"
)

// UploadRouteWorkbook ingests one day's route workbook. The whole import is
// one transaction: parse, resolve drivers and customers, then create or
// smart-merge the route. Row-level problems come back as warnings so the
// office can fix the sheet and re-upload.
func UploadRouteWorkbook(c *gin.Context) {
	uploaderID := uint(c.MustGet("user_id").(float64))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing workbook file: " + err.Error()})
		return
	}
	if fileHeader.Size > excel.MaxWorkbookSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook exceeds the 10 MiB limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload: " + err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, excel.MaxWorkbookSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload: " + err.Error()})
		return
	}

	mode := importer.ModeAuto
	if c.PostForm("mode") == string(importer.ModeForceCreate) {
		mode = importer.ModeForceCreate
	}

	parser := excel.NewParser(excel.TemplateV3, config.UploadLocation)
	result := parser.Parse(data)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"parse": result})
		return
	}

	svc := importer.New(config.DB)
	saved, err := svc.SaveRoute(c.Request.Context(), result.Route, uploaderID, fileHeader.Filename, mode)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUploaderNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, importer.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).Error("route import failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed: " + err.Error()})
		}
		return
	}

	result.Warnings = append(result.Warnings, saved.Warnings...)
	c.JSON(http.StatusOK, gin.H{
		"message":   "route imported successfully",
		"parse":     result,
		"route":     saved.Route,
		"is_update": saved.IsUpdate,
	})
}

// ListRoutes returns all non-deleted routes, newest first.
func ListRoutes(c *gin.Context) {
	var routes []models.Route
	if err := config.DB.Preload("Driver").Order("route_date DESC, route_number").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing routes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": routes})
}

// GetRoute returns one route with its stops and their customers.
func GetRoute(c *gin.Context) {
	routeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route ID format"})
		return
	}

	var route models.Route
	if err := config.DB.
		Preload("Driver").
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("stops.sequence") }).
		Preload("Stops.Customer").
		First(&route, uint(routeID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}
