package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditUC usecase.AuditUsecase
}

func NewAuditHandler(protected *gin.RouterGroup, auditUC usecase.AuditUsecase) {
	handler := &AuditHandler{auditUC: auditUC}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/audit-events", handler.ListEvents)
		admin.GET("/audit-events/export", handler.ExportEvents)
	}
}

func auditFilterFromQuery(c *gin.Context) (audit.Filter, error) {
	f := audit.Filter{
		EventType: audit.EventType(c.Query("event_type")),
		ViewerID:  c.Query("viewer_id"),
		TargetID:  c.Query("target_id"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return f, apperror.BadRequest("Invalid 'from' timestamp, expected RFC3339")
		}
		f.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return f, apperror.BadRequest("Invalid 'to' timestamp, expected RFC3339")
		}
		f.To = t
	}
	if page := c.Query("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			return f, apperror.BadRequest("Invalid page")
		}
		f.Page = p
	}
	if size := c.Query("page_size"); size != "" {
		s, err := strconv.Atoi(size)
		if err != nil {
			return f, apperror.BadRequest("Invalid page_size")
		}
		f.PageSize = s
	}

	return f, nil
}

// ListEvents godoc
// @Summary      List audit events
// @Description  Paginated privacy audit log, newest first
// @Tags         admin
// @Produce      json
// @Param        event_type  query     string  false  "Filter by event type"
// @Param        viewer_id   query     string  false  "Filter by viewer"
// @Param        target_id   query     string  false  "Filter by target subject"
// @Param        from        query     string  false  "RFC3339 lower bound"
// @Param        to          query     string  false  "RFC3339 upper bound"
// @Param        page        query     int     false  "Page (default 1)"
// @Param        page_size   query     int     false  "Page size (default 50, max 200)"
// @Success      200  {object}  response.Response{data=usecase.AuditPage}
// @Failure      403  {object}  response.Response
// @Router       /admin/audit-events [get]
// @Security     BearerAuth
func (h *AuditHandler) ListEvents(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	f, err := auditFilterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.auditUC.ListEvents(c.Request.Context(), principal, f)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Audit events", page)
}

// ExportEvents godoc
// @Summary      Export audit events to Excel
// @Description  Download the (filtered) audit log as an XLSX file
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        event_type  query     string  false  "Filter by event type"
// @Param        viewer_id   query     string  false  "Filter by viewer"
// @Param        target_id   query     string  false  "Filter by target subject"
// @Param        from        query     string  false  "RFC3339 lower bound"
// @Param        to          query     string  false  "RFC3339 upper bound"
// @Success      200  {file}  binary
// @Failure      403  {object}  response.Response
// @Router       /admin/audit-events/export [get]
// @Security     BearerAuth
func (h *AuditHandler) ExportEvents(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	f, err := auditFilterFromQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.auditUC.ExportEvents(c.Request.Context(), principal, f)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
