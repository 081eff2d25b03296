package v1

import (
	"net/http"

	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
}

func NewRecruiterHandler(protected *gin.RouterGroup, recruiterUC domain.RecruiterUsecase) {
	handler := &RecruiterHandler{recruiterUC: recruiterUC}

	recruiters := protected.Group("/recruiters")
	{
		recruiters.POST("/profile", handler.CompleteProfile)
		recruiters.GET("/profile", handler.GetProfile)
		recruiters.GET("/employer-number", handler.GetEmployerNumber)
	}
}

type CompleteRecruiterProfileRequest struct {
	HRName           string  `json:"hr_name" binding:"required,valid_name"`
	HREmail          string  `json:"hr_email" binding:"required,email"`
	OrganizationName string  `json:"organization_name" binding:"required"`
	EndClient        *string `json:"end_client"`
	VendorName       *string `json:"vendor_name"`
	Industry         *string `json:"industry"`
}

// CompleteProfile godoc
// @Summary      Complete the recruiter's employer profile
// @Description  Creates the employer record and allocates its 5-digit employer number
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        body  body      CompleteRecruiterProfileRequest  true  "Employer JSON"
// @Success      201   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /recruiters/profile [post]
// @Security     BearerAuth
func (h *RecruiterHandler) CompleteProfile(c *gin.Context) {
	var req CompleteRecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	employer, err := h.recruiterUC.CompleteProfile(c.Request.Context(), userID, &domain.Employer{
		HRName:           req.HRName,
		HREmail:          req.HREmail,
		OrganizationName: req.OrganizationName,
		EndClient:        req.EndClient,
		VendorName:       req.VendorName,
		Industry:         req.Industry,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Employer profile completed", employer)
}

// GetProfile godoc
// @Summary      Get the recruiter's employer profile
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiters/profile [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	employer, err := h.recruiterUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer profile fetched", employer)
}

// GetEmployerNumber godoc
// @Summary      Get the recruiter's allocated employer number
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiters/employer-number [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetEmployerNumber(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	number, err := h.recruiterUC.GetEmployerNumber(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer number fetched", gin.H{"employer_number": number})
}
