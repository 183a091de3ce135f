package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type GDPRHandler struct {
	gdprUC domain.GDPRUsecase
}

func NewGDPRHandler(protected *gin.RouterGroup, gdprUC domain.GDPRUsecase) {
	handler := &GDPRHandler{gdprUC: gdprUC}

	gdpr := protected.Group("/gdpr")
	gdpr.Use(middleware.RateLimitMiddleware(middleware.GDPRRateLimitConfig()))
	{
		gdpr.GET("/export", handler.ExportOwnData)
		gdpr.DELETE("/me", handler.DeleteOwnData)

		// Admin variants for acting on behalf of a subject. The decision
		// engine audits the override.
		gdpr.GET("/subjects/:id/export", handler.ExportSubjectData)
		gdpr.DELETE("/subjects/:id", handler.DeleteSubjectData)
	}
}

// ExportOwnData godoc
// @Summary      Export own data
// @Description  Download everything stored about the logged-in candidate as a single JSON bundle (GDPR data portability)
// @Tags         gdpr
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ExportBundle}
// @Failure      401  {object}  response.Response
// @Router       /gdpr/export [get]
// @Security     BearerAuth
func (h *GDPRHandler) ExportOwnData(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	h.export(c, principal, principal.ID)
}

// ExportSubjectData godoc
// @Summary      Export a subject's data (admin)
// @Tags         gdpr
// @Produce      json
// @Param        id   path      string  true  "Subject ID"
// @Success      200  {object}  response.Response{data=domain.ExportBundle}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gdpr/subjects/{id}/export [get]
// @Security     BearerAuth
func (h *GDPRHandler) ExportSubjectData(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	h.export(c, principal, c.Param("id"))
}

func (h *GDPRHandler) export(c *gin.Context, principal domain.Principal, subjectID string) {
	if subjectID == "" {
		c.Error(apperror.BadRequest("Subject ID is required"))
		return
	}

	bundle, err := h.gdprUC.ExportSubjectData(c.Request.Context(), principal, subjectID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Data export", bundle)
}

// DeleteOwnData godoc
// @Summary      Delete own data
// @Description  Erase the logged-in candidate's personal data. Application history is retained in anonymized form; the operation cannot be undone.
// @Tags         gdpr
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AnonymizeConfirmation}
// @Failure      401  {object}  response.Response
// @Router       /gdpr/me [delete]
// @Security     BearerAuth
func (h *GDPRHandler) DeleteOwnData(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	h.delete(c, principal, principal.ID)
}

// DeleteSubjectData godoc
// @Summary      Delete a subject's data (admin)
// @Tags         gdpr
// @Produce      json
// @Param        id   path      string  true  "Subject ID"
// @Success      200  {object}  response.Response{data=domain.AnonymizeConfirmation}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gdpr/subjects/{id} [delete]
// @Security     BearerAuth
func (h *GDPRHandler) DeleteSubjectData(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	h.delete(c, principal, c.Param("id"))
}

func (h *GDPRHandler) delete(c *gin.Context, principal domain.Principal, subjectID string) {
	if subjectID == "" {
		c.Error(apperror.BadRequest("Subject ID is required"))
		return
	}

	confirmation, err := h.gdprUC.DeleteAndAnonymize(c.Request.Context(), principal, subjectID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Personal data erased", confirmation)
}
