package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	protected.GET("/candidates/me", handler.GetOwnProfile)

	// Viewing another candidate is a public route: anonymous viewers are a
	// legitimate audience for PUBLIC profiles.
	public.GET("/candidates/:id", handler.GetProfileView)
}

// GetOwnProfile godoc
// @Summary      Get own profile
// @Description  Get the full, unfiltered profile of the logged-in candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.FullProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	profile, err := h.profileUC.GetOwnProfile(c.Request.Context(), principal)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile", profile)
}

// GetProfileView godoc
// @Summary      View a candidate profile
// @Description  Get a candidate profile filtered by the owner's privacy settings
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate subject ID"
// @Success      200  {object}  response.Response{data=domain.ProfileView}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *ProfileHandler) GetProfileView(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	subjectID := c.Param("id")
	if subjectID == "" {
		c.Error(apperror.BadRequest("Candidate ID is required"))
		return
	}

	view, err := h.profileUC.GetProfileView(c.Request.Context(), principal, subjectID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", view)
}
