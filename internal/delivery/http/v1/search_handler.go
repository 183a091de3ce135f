package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

func NewSearchHandler(public *gin.RouterGroup, searchUC domain.SearchUsecase) {
	handler := &SearchHandler{searchUC: searchUC}

	public.GET("/candidates/search", middleware.RateLimitMiddleware(middleware.SearchRateLimitConfig()), handler.Search)
}

// Search godoc
// @Summary      Search candidates
// @Description  Search candidate profiles. Results honor each candidate's privacy settings; non-searchable profiles are silently omitted.
// @Tags         candidates
// @Produce      json
// @Param        q      query     string  true   "Search query"
// @Param        limit  query     int     false  "Max results (default 20, max 100)"
// @Success      200  {object}  response.Response{data=[]domain.ProfileView}
// @Failure      400  {object}  response.Response
// @Router       /candidates/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	query := c.Query("q")
	if query == "" {
		c.Error(apperror.BadRequest("Query parameter 'q' is required"))
		return
	}

	limit := 0
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid limit"))
			return
		}
		limit = parsed
	}

	results, err := h.searchUC.SearchCandidates(c.Request.Context(), principal, query, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results", results)
}
