package v1

import (
	"io"
	"net/http"
	"strconv"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("", handler.Upload)
		resumes.GET("", handler.List)
		resumes.GET("/:id/download", handler.Download)
		resumes.PUT("/:id/default", handler.SetDefault)
		resumes.DELETE("/:id", handler.Delete)
	}
}

// Upload godoc
// @Summary      Upload a resume
// @Description  Accepts pdf, doc or docx up to 5MB; a candidate keeps at most three resumes
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume       formData  file    true   "Resume file"
// @Param        custom_name  formData  string  false  "Display name"
// @Param        set_default  formData  bool    false  "Make this the default resume"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("resume file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.BadRequest("could not read uploaded file"))
		return
	}

	setDefault, _ := strconv.ParseBool(c.PostForm("set_default"))
	userID := c.GetString(string(domain.KeyUserID))

	resume, err := h.resumeUC.Upload(c.Request.Context(), userID,
		fileHeader.Filename, c.PostForm("custom_name"), data,
		fileHeader.Header.Get("Content-Type"), setDefault)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded", resume)
}

// List godoc
// @Summary      List the candidate's resumes
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	resumes, err := h.resumeUC.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes fetched", resumes)
}

// Download godoc
// @Summary      Download a resume file
// @Tags         resumes
// @Produce      application/octet-stream
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/download [get]
// @Security     BearerAuth
func (h *ResumeHandler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid resume id"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	resume, data, err := h.resumeUC.Download(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resume.FileName+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// SetDefault godoc
// @Summary      Make a resume the default
// @Description  Exactly one resume per candidate carries the default flag
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/default [put]
// @Security     BearerAuth
func (h *ResumeHandler) SetDefault(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid resume id"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	resume, err := h.resumeUC.SetDefault(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Default resume updated", resume)
}

// Delete godoc
// @Summary      Delete a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid resume id"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.resumeUC.Delete(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted", nil)
}
