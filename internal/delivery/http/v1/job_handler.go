package v1

import (
	"net/http"
	"strconv"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public listing only exposes active jobs.
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Deactivate)
	}

	recruiters := protected.Group("/recruiters")
	{
		recruiters.GET("/jobs", handler.ListByRecruiter)
	}
}

type JobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	RequiredSkills string   `json:"required_skills" binding:"required"`
	JobType        string   `json:"job_type" binding:"required,oneof=fulltime parttime contract"`
	City           string   `json:"city" binding:"required"`
	State          string   `json:"state" binding:"required"`
	ZipCode        string   `json:"zip_code" binding:"required"`
	Country        string   `json:"country" binding:"required"`
	BillRate       *float64 `json:"bill_rate" binding:"omitempty,gt=0"`
	DurationMonths *int     `json:"duration_months" binding:"omitempty,gt=0"`
}

func (r *JobRequest) toDomain() *domain.Job {
	return &domain.Job{
		Title:          r.Title,
		Description:    r.Description,
		RequiredSkills: r.RequiredSkills,
		JobType:        r.JobType,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		Country:        r.Country,
		BillRate:       r.BillRate,
		DurationMonths: r.DurationMonths,
	}
}

func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// List godoc
// @Summary      List active job postings
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}

// GetDetails godoc
// @Summary      Get one job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid job id"))
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job fetched", job)
}

// Create godoc
// @Summary      Post a new job
// @Description  Recruiter only; requires a completed employer profile
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      JobRequest  true  "Job JSON"
// @Success      201   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toDomain()
	if err := h.jobUC.PostJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job posted", job)
}

// Update godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "Job ID"
// @Param        body  body      JobRequest  true  "Job JSON"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid job id"))
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toDomain()
	job.ID = id
	if err := h.jobUC.UpdateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Deactivate godoc
// @Summary      Deactivate a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid job id"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.DeactivateJob(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deactivated", nil)
}

// ListByRecruiter godoc
// @Summary      List the recruiter's own job postings
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /recruiters/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByRecruiter(c *gin.Context) {
	page, pageSize := pageParams(c)
	userID := c.GetString(string(domain.KeyUserID))
	jobs, total, err := h.jobUC.ListJobsByRecruiter(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}
