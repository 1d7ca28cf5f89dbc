package handlers

import (
	"errors"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"trashmap/aggr"
	"trashmap/apperrors"
	"trashmap/database"
	"trashmap/models"
	"trashmap/photos"
)

const (
	defaultPage  = 1
	defaultLimit = 100
)

type TrashHandler struct {
	service *database.TrashService
	photos  *photos.Store
}

func NewTrashHandler(service *database.TrashService, store *photos.Store) *TrashHandler {
	return &TrashHandler{
		service: service,
		photos:  store,
	}
}

// HealthCheck returns a simple health status
func (h *TrashHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: "trashmap",
	})
}

// CreateTrash accepts a multipart submission: trash_type, latitude,
// longitude, optional user_name and optional photo file. Validation runs
// before anything is persisted; a photo already written to disk is removed
// again on any later failure so no orphaned files remain.
func (h *TrashHandler) CreateTrash(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidInput, "latitude is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidInput, "longitude is required and must be a number")
		return
	}

	input := &models.CreateEntryInput{
		TrashType: c.PostForm("trash_type"),
		Latitude:  lat,
		Longitude: lng,
		UserName:  c.PostForm("user_name"),
	}

	if v := models.ValidateEntryInput(input); !v.Valid {
		apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidInput, v.Reason)
		return
	}

	var savedPhoto string
	if file, err := c.FormFile("photo"); err == nil {
		filename, err := h.savePhoto(file)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnsupportedMedia) {
				apperrors.JSON(c, http.StatusUnsupportedMediaType, apperrors.CodeUnsupportedMedia, err.Error())
				return
			}
			log.Errorf("Failed to store photo: %v", err)
			apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to store photo")
			return
		}
		savedPhoto = filename
		input.PhotoURL = "/api/photos/" + filename
	}

	entry, err := h.service.CreateEntry(c.Request.Context(), input)
	if err != nil {
		log.Errorf("Failed to save entry: %v", err)
		if savedPhoto != "" {
			h.photos.Remove(savedPhoto)
		}
		apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to create trash entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TrashHandler) savePhoto(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return h.photos.Save(data)
}

// GetTrash lists entries newest-first with optional date/type filters and
// pagination. The total reflects the filtered set before pagination.
func (h *TrashHandler) GetTrash(c *gin.Context) {
	filter := &models.EntryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		TrashType: c.Query("trash_type"),
	}
	if filter.TrashType != "" && !models.IsValidTrashType(filter.TrashType) {
		apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidInput, "invalid trash_type filter")
		return
	}

	page := intQuery(c, "page", defaultPage)
	limit := intQuery(c, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	entries, err := h.service.GetEntries(c.Request.Context(), filter)
	if err != nil {
		apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to fetch trash entries")
		return
	}

	total := len(entries)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, models.EntriesResponse{
		Entries:    entries[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	})
}

// GetStats computes the statistics over entries matching the optional date
// filter.
func (h *TrashHandler) GetStats(c *gin.Context) {
	filter := &models.EntryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	entries, err := h.service.GetEntries(c.Request.Context(), filter)
	if err != nil {
		apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to calculate statistics")
		return
	}

	c.JSON(http.StatusOK, aggr.Compute(entries))
}

// ServePhoto streams a stored photo. The filename is checked against the
// safe pattern before any filesystem access.
func (h *TrashHandler) ServePhoto(c *gin.Context) {
	filename := c.Param("filename")

	path, err := h.photos.Path(filename)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidFilename):
			apperrors.JSON(c, http.StatusBadRequest, apperrors.CodeInvalidFilename, "Invalid filename format")
		case errors.Is(err, apperrors.ErrNotFound):
			apperrors.JSON(c, http.StatusNotFound, apperrors.CodeFileNotFound, "Photo not found")
		default:
			log.Errorf("Failed to resolve photo %s: %v", filename, err)
			apperrors.JSON(c, http.StatusInternalServerError, apperrors.CodeInternal, "Failed to serve photo")
		}
		return
	}

	c.Header("Content-Type", photos.ContentType(filename))
	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
