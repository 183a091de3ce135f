package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PrivacyHandler struct {
	privacyUC domain.PrivacyUsecase
}

func NewPrivacyHandler(protected *gin.RouterGroup, privacyUC domain.PrivacyUsecase) {
	handler := &PrivacyHandler{privacyUC: privacyUC}

	privacy := protected.Group("/privacy")
	{
		privacy.GET("/settings", handler.GetSettings)
		privacy.PUT("/settings", handler.UpdateSettings)
	}
}

// GetSettings godoc
// @Summary      Get privacy settings
// @Description  Get the caller's privacy settings. Admins may pass subject_id to read another subject's settings.
// @Tags         privacy
// @Produce      json
// @Param        subject_id  query     string  false  "Subject ID (admin only)"
// @Success      200  {object}  response.Response{data=domain.PrivacySettings}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /privacy/settings [get]
// @Security     BearerAuth
func (h *PrivacyHandler) GetSettings(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	subjectID := principal.ID
	if q := c.Query("subject_id"); q != "" {
		subjectID = q
	}

	settings, err := h.privacyUC.GetSettings(c.Request.Context(), principal, subjectID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Privacy settings", settings)
}

// UpdateSettings godoc
// @Summary      Update privacy settings
// @Description  Replace the caller's privacy settings. Admins may update another subject; the change is audited.
// @Tags         privacy
// @Accept       json
// @Produce      json
// @Param        settings  body      domain.PrivacySettings  true  "Privacy settings"
// @Success      200  {object}  response.Response{data=domain.PrivacySettings}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /privacy/settings [put]
// @Security     BearerAuth
func (h *PrivacyHandler) UpdateSettings(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var settings domain.PrivacySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.Error(apperror.BadRequest("Invalid settings payload: " + err.Error()))
		return
	}

	if err := h.privacyUC.UpdateSettings(c.Request.Context(), principal, &settings); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Privacy settings updated", settings)
}
