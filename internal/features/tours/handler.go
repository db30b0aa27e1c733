package tours

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/cloudinary"
	"github.com/trekline/gotours/internal/pkg/query"
	"github.com/trekline/gotours/internal/pkg/response"
)

type Handler struct {
	repo *Repository
	cld  *cloudinary.Service
}

func NewHandler(repo *Repository, cld *cloudinary.Service) *Handler {
	return &Handler{repo: repo, cld: cld}
}

// List godoc
// @Summary List tours
// @Description Supports filtering (duration[gte]=5), sorting, field limiting and pagination
// @Tags tours
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tours [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query())

	tours, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, len(tours), gin.H{"tours": tours})
}

// TopCheap is the alias route preset: the five best-rated tours, cheapest
// first, trimmed to the headline fields. It rewrites the query and reuses
// List.
func (h *Handler) TopCheap(c *gin.Context) {
	preset := url.Values{}
	preset.Set("limit", "5")
	preset.Set("sort", "-ratingsAverage,price")
	preset.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = preset.Encode()

	h.List(c)
}

// Get godoc
// @Summary Get a tour by id
// @Tags tours
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /tours/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	tour, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if tour == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

// Create godoc
// @Summary Create a tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTourRequest true "Tour data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /tours [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	if err := ValidateCreate(&req); err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"tour": tour})
}

// Update godoc
// @Summary Patch a tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param request body UpdateTourRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /tours/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(400, "Invalid request format", err))
		return
	}

	current, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if current == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	if err := ValidateUpdate(&req, current.Price); err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.repo.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if tour == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

// Delete godoc
// @Summary Delete a tour
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /tours/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadImage godoc
// @Summary Upload a tour image
// @Description Multipart upload; cover=true replaces the cover image, otherwise the image is appended to the gallery
// @Tags tours
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param image formData file true "Image file"
// @Param cover query bool false "Set as cover image"
// @Success 200 {object} response.Envelope
// @Router /tours/{id}/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	if h.cld == nil {
		response.Error(c, apperror.Internal("Image uploads are not configured"))
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error(c, apperror.BadRequest("Image file is required"))
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.Error(c, apperror.Wrap(400, err.Error(), err))
		return
	}

	result, err := h.cld.UploadImage(c.Request.Context(), file, "tours")
	if err != nil {
		response.Error(c, err)
		return
	}

	cover, _ := strconv.ParseBool(c.Query("cover"))
	tour, err := h.repo.AddImage(c.Request.Context(), c.Param("id"), result.URL, cover)
	if err != nil {
		response.Error(c, err)
		return
	}
	if tour == nil {
		response.Error(c, apperror.NotFound("Invalid ID"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tour": tour})
}

// Stats godoc
// @Summary Tour statistics grouped by difficulty
// @Tags tours
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tours/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GetMonthlyPlan godoc
// @Summary Tour starts per month for a year
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Success 200 {object} response.Envelope
// @Router /tours/monthly-plan/{year} [get]
func (h *Handler) GetMonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, apperror.BadRequest("Year must be a number"))
		return
	}

	plan, err := h.repo.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}
