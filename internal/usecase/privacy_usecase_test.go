package usecase_test

import (
	"context"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/audit"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPrivacyUsecase(settingsRepo *MockSettingsRepo, rec *CapturingRecorder) domain.PrivacyUsecase {
	return usecase.NewPrivacyUsecase(settingsRepo, rec, validator.New())
}

func TestGetSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail when anonymous", func(t *testing.T) {
		uc := newPrivacyUsecase(new(MockSettingsRepo), &CapturingRecorder{})
		_, err := uc.GetSettings(ctx, domain.AnonymousPrincipal(), "subject1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should fail when reading someone else's settings", func(t *testing.T) {
		uc := newPrivacyUsecase(new(MockSettingsRepo), &CapturingRecorder{})
		_, err := uc.GetSettings(ctx, candidate("user1"), "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own privacy settings")
	})

	t.Run("Admin may read another subject's settings", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(publicSettings("subject1"), nil)
		uc := newPrivacyUsecase(settingsRepo, &CapturingRecorder{})

		settings, err := uc.GetSettings(ctx, admin("admin1"), "subject1")
		assert.NoError(t, err)
		assert.Equal(t, "subject1", settings.SubjectID)
	})

	t.Run("Missing row is a 404, not a default", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "user1").Return(nil, nil)
		uc := newPrivacyUsecase(settingsRepo, &CapturingRecorder{})

		_, err := uc.GetSettings(ctx, candidate("user1"), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Privacy settings not found")
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Should force SubjectID from the principal", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PrivacySettings")).Return(nil).
			Run(func(args mock.Arguments) {
				s := args.Get(1).(*domain.PrivacySettings)
				assert.Equal(t, "user1", s.SubjectID)
			})
		uc := newPrivacyUsecase(settingsRepo, &CapturingRecorder{})

		payload := publicSettings("hacker_try")
		err := uc.UpdateSettings(ctx, candidate("user1"), payload)
		assert.NoError(t, err)
		settingsRepo.AssertExpectations(t)
	})

	t.Run("Unknown field visibility keys are stripped before persisting", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).
			Run(func(args mock.Arguments) {
				s := args.Get(1).(*domain.PrivacySettings)
				_, hasUnknown := s.FieldVisibility["ssn"]
				assert.False(t, hasUnknown)
				assert.True(t, s.FieldVisibility[domain.FieldSkills])
			})
		uc := newPrivacyUsecase(settingsRepo, &CapturingRecorder{})

		payload := publicSettings("user1")
		payload.FieldVisibility["ssn"] = true
		err := uc.UpdateSettings(ctx, candidate("user1"), payload)
		assert.NoError(t, err)
	})

	t.Run("Invalid privacy level fails validation", func(t *testing.T) {
		uc := newPrivacyUsecase(new(MockSettingsRepo), &CapturingRecorder{})
		payload := publicSettings("user1")
		payload.PrivacyLevel = "FRIENDS_ONLY"
		err := uc.UpdateSettings(ctx, candidate("user1"), payload)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Privacy level")
	})

	t.Run("Non-positive retention override fails validation", func(t *testing.T) {
		uc := newPrivacyUsecase(new(MockSettingsRepo), &CapturingRecorder{})
		payload := publicSettings("user1")
		negative := -30
		payload.DataRetentionDays = &negative
		err := uc.UpdateSettings(ctx, candidate("user1"), payload)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Data retention days")
	})

	t.Run("Admin update of another subject is audited", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		rec := &CapturingRecorder{}
		uc := newPrivacyUsecase(settingsRepo, rec)

		err := uc.UpdateSettings(ctx, admin("admin1"), publicSettings("subject1"))
		assert.NoError(t, err)

		events := rec.ByType(audit.EventSettingsChanged)
		assert.Len(t, events, 1)
		assert.Equal(t, "admin1", events[0].ViewerID)
		assert.Equal(t, "subject1", events[0].TargetID)
	})

	t.Run("Own update is not audited as a settings change by admin", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		rec := &CapturingRecorder{}
		uc := newPrivacyUsecase(settingsRepo, rec)

		err := uc.UpdateSettings(ctx, candidate("user1"), publicSettings("user1"))
		assert.NoError(t, err)
		assert.Empty(t, rec.ByType(audit.EventSettingsChanged))
	})
}
