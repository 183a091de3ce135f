package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
)

type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) List(ctx context.Context, f audit.Filter) ([]audit.Event, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]audit.Event), args.Get(1).(int64), args.Error(2)
}

func auditEvents() []audit.Event {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return []audit.Event{
		{
			ID:        2,
			Timestamp: ts.Add(time.Minute),
			Service:   "privacy-core",
			Event:     audit.EventAdminOverride,
			Severity:  audit.SeverityHIGH,
			ViewerID:  "admin-1",
			TargetID:  "subject-1",
			Action:    "read",
			RequestID: "req-2",
		},
		{
			ID:        1,
			Timestamp: ts,
			Service:   "privacy-core",
			Event:     audit.EventContactDenied,
			Severity:  audit.SeverityINFO,
			ViewerID:  "employer-1",
			TargetID:  "subject-1",
			Action:    "contact",
			Reason:    "privacy_rule",
			RequestID: "req-1",
		},
	}
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject non-admin principals", func(t *testing.T) {
		store := new(MockAuditStore)
		uc := usecase.NewAuditUsecase(store)

		_, err := uc.ListEvents(ctx, employer("employer-1"), audit.Filter{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins")
		store.AssertNotCalled(t, "List")
	})

	t.Run("Should apply pagination defaults before hitting the store", func(t *testing.T) {
		store := new(MockAuditStore)
		uc := usecase.NewAuditUsecase(store)

		store.On("List", ctx, mock.MatchedBy(func(f audit.Filter) bool {
			return f.Page == 1 && f.PageSize == 50
		})).Return(auditEvents(), int64(2), nil)

		page, err := uc.ListEvents(ctx, admin("admin-1"), audit.Filter{Page: 0, PageSize: 9999})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 50, page.PageSize)
		assert.Len(t, page.Events, 2)
		store.AssertExpectations(t)
	})

	t.Run("Should surface store failures as internal errors", func(t *testing.T) {
		store := new(MockAuditStore)
		uc := usecase.NewAuditUsecase(store)

		store.On("List", ctx, mock.Anything).Return(nil, int64(0), errors.New("connection refused"))

		_, err := uc.ListEvents(ctx, admin("admin-1"), audit.Filter{})

		assert.Error(t, err)
	})
}

func TestExportEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject non-admin principals", func(t *testing.T) {
		store := new(MockAuditStore)
		uc := usecase.NewAuditUsecase(store)

		_, _, err := uc.ExportEvents(ctx, candidate("subject-1"), audit.Filter{})

		assert.Error(t, err)
		store.AssertNotCalled(t, "List")
	})

	t.Run("Should produce a readable workbook with one row per event", func(t *testing.T) {
		store := new(MockAuditStore)
		uc := usecase.NewAuditUsecase(store)

		store.On("List", ctx, mock.MatchedBy(func(f audit.Filter) bool {
			return f.Page == 1 && f.PageSize == 200
		})).Return(auditEvents(), int64(2), nil)

		data, filename, err := uc.ExportEvents(ctx, admin("admin-1"), audit.Filter{})

		assert.NoError(t, err)
		assert.Contains(t, filename, "audit_events_")
		assert.Contains(t, filename, ".xlsx")

		fx, err := excelize.OpenReader(bytes.NewReader(data))
		assert.NoError(t, err)
		defer fx.Close()

		header, err := fx.GetCellValue("Audit Events", "A1")
		assert.NoError(t, err)
		assert.Equal(t, "ID", header)

		eventCell, err := fx.GetCellValue("Audit Events", "C2")
		assert.NoError(t, err)
		assert.Equal(t, "admin_override", eventCell)

		reasonCell, err := fx.GetCellValue("Audit Events", "H3")
		assert.NoError(t, err)
		assert.Equal(t, "privacy_rule", reasonCell)

		store.AssertExpectations(t)
	})
}
