package v1

import (
	"io"
	"net/http"
	"time"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := protected.Group("/candidates")
	{
		candidates.POST("/profile", handler.CompleteProfile)
		candidates.GET("/profile", handler.GetProfile)
		candidates.POST("/photo", handler.UploadPhoto)
	}
}

type CompleteCandidateProfileRequest struct {
	DateOfBirth *string  `json:"date_of_birth"`
	Gender      *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Skills      []string `json:"skills" binding:"required,min=1,dive,required"`
	Summary     *string  `json:"summary" binding:"omitempty,no_emoji"`
}

// CompleteProfile godoc
// @Summary      Create or update the candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      CompleteCandidateProfileRequest  true  "Profile JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /candidates/profile [post]
// @Security     BearerAuth
func (h *CandidateHandler) CompleteProfile(c *gin.Context) {
	var req CompleteCandidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate := &domain.Candidate{
		Gender:  req.Gender,
		Skills:  req.Skills,
		Summary: req.Summary,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			c.Error(apperror.BadRequest("date_of_birth must be YYYY-MM-DD"))
			return
		}
		candidate.DateOfBirth = &dob
	}

	userID := c.GetString(string(domain.KeyUserID))
	result, err := h.candidateUC.CompleteProfile(c.Request.Context(), userID, candidate)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile saved", result)
}

// GetProfile godoc
// @Summary      Get the candidate profile
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	candidate, err := h.candidateUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile fetched", candidate)
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Description  Accepts jpeg or png up to 2MB; the image is downscaled before storage
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "Photo file"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /candidates/photo [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.Error(apperror.BadRequest("photo file is required"))
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

	userID := c.GetString(string(domain.KeyUserID))
	key, err := h.candidateUC.UploadPhoto(c.Request.Context(), userID,
		fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Photo uploaded", gin.H{"photo_path": key})
}
