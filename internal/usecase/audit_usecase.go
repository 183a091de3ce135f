package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"

	"github.com/xuri/excelize/v2"
)

// AuditStore is the read side of the audit log.
type AuditStore interface {
	List(ctx context.Context, f audit.Filter) ([]audit.Event, int64, error)
}

// AuditPage is one page of audit events.
type AuditPage struct {
	Events   []audit.Event `json:"events"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// AuditUsecase exposes the privacy audit log to admins.
type AuditUsecase interface {
	ListEvents(ctx context.Context, principal domain.Principal, f audit.Filter) (*AuditPage, error)
	ExportEvents(ctx context.Context, principal domain.Principal, f audit.Filter) ([]byte, string, error)
}

type auditUsecase struct {
	store AuditStore
}

func NewAuditUsecase(store AuditStore) AuditUsecase {
	return &auditUsecase{store: store}
}

func (u *auditUsecase) requireAdmin(principal domain.Principal) error {
	if principal.Role != domain.RoleAdmin {
		return apperror.Forbidden("Only admins can view the audit log")
	}
	return nil
}

func (u *auditUsecase) ListEvents(ctx context.Context, principal domain.Principal, f audit.Filter) (*AuditPage, error) {
	if err := u.requireAdmin(principal); err != nil {
		return nil, err
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 50
	}

	events, total, err := u.store.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuditPage{
		Events:   events,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}

var auditExportColumns = []string{"ID", "TIMESTAMP", "EVENT", "SEVERITY", "VIEWER", "TARGET", "ACTION", "REASON", "REQUEST ID"}

// ExportEvents produces an XLSX dump of the (filtered) audit log.
func (u *auditUsecase) ExportEvents(ctx context.Context, principal domain.Principal, f audit.Filter) ([]byte, string, error) {
	if err := u.requireAdmin(principal); err != nil {
		return nil, "", err
	}

	// Export ignores pagination; cap the page size at the repository maximum
	// and walk pages until done.
	f.Page = 1
	f.PageSize = 200

	fx := excelize.NewFile()
	sheetName := "Audit Events"
	fx.SetSheetName("Sheet1", sheetName)

	for i, col := range auditExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(auditExportColumns), 1)
	fx.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	row := 2
	for {
		events, total, err := u.store.List(ctx, f)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		for _, e := range events {
			values := []interface{}{
				e.ID,
				e.Timestamp.UTC().Format(time.RFC3339),
				string(e.Event),
				string(e.Severity),
				e.ViewerID,
				e.TargetID,
				e.Action,
				e.Reason,
				e.RequestID,
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				fx.SetCellValue(sheetName, cell, v)
			}
			row++
		}
		if int64(f.Page*f.PageSize) >= total || len(events) == 0 {
			break
		}
		f.Page++
	}

	for i := range auditExportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		fx.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := fx.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("audit_events_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
