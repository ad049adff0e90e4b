package handlers

import (
	"net/http"
	"time"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService     services.CompanyService
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewCompanyHandler(
	base *BaseHandler,
	companyService services.CompanyService,
	jobService services.JobService,
	applicationService services.ApplicationService,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:        base,
		companyService:     companyService,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("/search", h.Search)
		companies.GET("/:id", h.Get)
		companies.GET("/:id/jobs", h.ListJobs)

		hr := companies.Group("")
		hr.Use(middleware.RequireRoles(models.UserRoleCompanyHR))
		{
			hr.POST("", h.Create)
			hr.PUT("/:id", h.Update)
			hr.DELETE("/:id", h.Delete)
			hr.GET("/:id/applications", h.ApplicationsForDay)
		}
	}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	company, err := h.companyService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	company, err := h.companyService.Update(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	company, err := h.companyService.GetWithJobs(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	db := h.GetDB(c)

	companies, err := h.companyService.SearchByName(db, name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) ListJobs(c *gin.Context) {
	db := h.GetDB(c)

	jobs, err := h.jobService.ListForCompany(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.companyService.Delete(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// ApplicationsForDay returns a company's applications for one calendar
// day (?date=YYYY-MM-DD, defaulting to today).
func (h *CompanyHandler) ApplicationsForDay(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	db := h.GetDB(c)

	response, err := h.applicationService.ListForCompanyOnDay(db, userID, c.Param("id"), day)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
