package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-careermatch-backend/internal/delivery/http/middleware"
	"go-careermatch-backend/internal/delivery/http/response"
	"go-careermatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", handler.Stats)
		admin.GET("/users", handler.ListUsers)
		admin.PUT("/users/:id/deactivate", handler.DeactivateUser)
		admin.GET("/jobs/export", handler.ExportJobs)
	}
}

// Stats godoc
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats fetched", stats)
}

// ListUsers godoc
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.adminUC.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users fetched", gin.H{
		"users": users,
		"total": total,
		"page":  page,
	})
}

// DeactivateUser godoc
// @Summary      Deactivate an account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/deactivate [put]
// @Security     BearerAuth
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	if err := h.adminUC.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deactivated", nil)
}

// ExportJobs godoc
// @Summary      Export all jobs as a spreadsheet
// @Tags         admin
// @Produce      application/octet-stream
// @Param        format  query  string  false  "xlsx or csv"  default(xlsx)
// @Success      200
// @Router       /admin/jobs/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportJobs(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	content, filename, err := h.adminUC.ExportJobs(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, content)
}
