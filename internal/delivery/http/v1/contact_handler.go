package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(protected *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}

	protected.POST("/candidates/:id/contact",
		middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig()),
		handler.RequestContact,
	)
}

// RequestContact godoc
// @Summary      Contact a candidate
// @Description  Send a contact request to a candidate. The candidate's email is never revealed; delivery happens through a relay. Requires a verified employer account and the candidate's consent via privacy settings.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Candidate subject ID"
// @Param        request  body      domain.ContactRequest true  "Contact request"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/contact [post]
// @Security     BearerAuth
func (h *ContactHandler) RequestContact(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	targetID := c.Param("id")
	if targetID == "" {
		c.Error(apperror.BadRequest("Candidate ID is required"))
		return
	}

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid contact payload: " + err.Error()))
		return
	}

	if err := h.contactUC.RequestContact(c.Request.Context(), principal, targetID, &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Contact request sent", nil)
}
