package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProfileUsecase(profileRepo *MockProfileRepo, settingsRepo *MockSettingsRepo) domain.ProfileUsecase {
	access := usecase.NewAccessUsecase(settingsRepo, &CapturingRecorder{})
	return usecase.NewProfileUsecase(profileRepo, settingsRepo, access)
}

func TestGetOwnProfile(t *testing.T) {
	t.Run("Should fail when anonymous", func(t *testing.T) {
		uc := newProfileUsecase(new(MockProfileRepo), new(MockSettingsRepo))
		_, err := uc.GetOwnProfile(context.Background(), domain.AnonymousPrincipal())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should return full profile unfiltered", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(testProfile("subject1"), nil)
		uc := newProfileUsecase(profileRepo, new(MockSettingsRepo))

		profile, err := uc.GetOwnProfile(context.Background(), candidate("subject1"))
		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.NotNil(t, profile.SalaryExpectationMin)
	})

	t.Run("Should 404 when profile does not exist", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetBySubjectID", mock.Anything, "ghost").Return(nil, nil)
		uc := newProfileUsecase(profileRepo, new(MockSettingsRepo))

		_, err := uc.GetOwnProfile(context.Background(), candidate("ghost"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Profile not found")
	})
}

func TestGetProfileView(t *testing.T) {
	ctx := context.Background()

	t.Run("Denied read surfaces generic access denied", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(privateSettings("subject1"), nil)
		profileRepo := new(MockProfileRepo)
		uc := newProfileUsecase(profileRepo, settingsRepo)

		_, err := uc.GetProfileView(ctx, employer("rec1"), "subject1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied due to privacy settings")
		// The gate is before the data: the profile row was never touched.
		profileRepo.AssertNotCalled(t, "GetBySubjectID", mock.Anything, mock.Anything)
	})

	t.Run("Missing settings yields minimal stub", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(nil, nil)
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(testProfile("subject1"), nil)
		uc := newProfileUsecase(profileRepo, settingsRepo)

		view, err := uc.GetProfileView(ctx, employer("rec1"), "subject1")
		assert.NoError(t, err)
		assert.Equal(t, "subject1", view.ID)
		assert.Equal(t, "J. Doe", view.DisplayName)
		assert.NotNil(t, view.PublicProfile)
		assert.False(t, *view.PublicProfile)
		// Nothing else leaks.
		assert.Nil(t, view.FullName)
		assert.Nil(t, view.Email)
		assert.Nil(t, view.Location)
		assert.Nil(t, view.Skills)
		assert.Nil(t, view.SalaryExpectationMin)
	})

	t.Run("Settings store failure falls back to the same stub", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(nil, errors.New("timeout"))
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(testProfile("subject1"), nil)
		uc := newProfileUsecase(profileRepo, settingsRepo)

		view, err := uc.GetProfileView(ctx, employer("rec1"), "subject1")
		assert.NoError(t, err)
		assert.NotNil(t, view.PublicProfile)
		assert.False(t, *view.PublicProfile)
	})

	t.Run("404 when profile row is gone", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "gone").Return(publicSettings("gone"), nil)
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetBySubjectID", mock.Anything, "gone").Return(nil, nil)
		uc := newProfileUsecase(profileRepo, settingsRepo)

		_, err := uc.GetProfileView(ctx, employer("rec1"), "gone")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Profile not found")
	})
}

func TestFilterProfileFields(t *testing.T) {
	uc := newProfileUsecase(new(MockProfileRepo), new(MockSettingsRepo))
	profile := testProfile("subject1")

	t.Run("Self sees everything regardless of settings", func(t *testing.T) {
		view := uc.FilterProfileFields(profile, candidate("subject1"), privateSettings("subject1"))
		assert.NotNil(t, view.Email)
		assert.NotNil(t, view.PhoneNumber)
		assert.NotNil(t, view.SalaryExpectationMin)
		assert.NotEmpty(t, view.WorkExperiences)
	})

	t.Run("Defaults hide email and phone, show the rest", func(t *testing.T) {
		view := uc.FilterProfileFields(profile, employer("rec1"), publicSettings("subject1"))
		assert.Equal(t, "subject1", view.ID)
		assert.Nil(t, view.Email)
		assert.Nil(t, view.PhoneNumber)
		assert.NotNil(t, view.FullName)
		assert.NotNil(t, view.Location)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, view.Skills)
		assert.NotEmpty(t, view.WorkExperiences)
		assert.NotEmpty(t, view.Educations)
		assert.NotEmpty(t, view.Portfolio)
	})

	t.Run("Salary appears only when showSalaryExpectations is on", func(t *testing.T) {
		settings := publicSettings("subject1")
		view := uc.FilterProfileFields(profile, employer("rec1"), settings)
		assert.Nil(t, view.SalaryExpectationMin)
		assert.Nil(t, view.SalaryExpectationMax)
		assert.Nil(t, view.SalaryCurrency)

		settings.ShowSalaryExpectations = true
		view = uc.FilterProfileFields(profile, employer("rec1"), settings)
		assert.Equal(t, int64(90000), *view.SalaryExpectationMin)
		assert.Equal(t, int64(120000), *view.SalaryExpectationMax)
		assert.Equal(t, "EUR", *view.SalaryCurrency)
	})

	t.Run("Salary stays hidden even when all fields are visible", func(t *testing.T) {
		settings := publicSettings("subject1")
		for _, f := range domain.KnownProfileFields {
			settings.FieldVisibility[f] = true
		}
		view := uc.FilterProfileFields(profile, employer("rec1"), settings)
		assert.NotNil(t, view.Email)
		assert.Nil(t, view.SalaryExpectationMin)
	})

	t.Run("Unknown visibility keys are ignored", func(t *testing.T) {
		settings := privateSettings("subject1")
		settings.FieldVisibility = map[domain.ProfileField]bool{
			"ssn":          true,
			"internalNote": true,
		}
		view := uc.FilterProfileFields(profile, employer("rec1"), settings)
		assert.Nil(t, view.FullName)
		assert.Nil(t, view.Email)
		assert.Nil(t, view.Skills)
		assert.Equal(t, "J. Doe", view.DisplayName)
	})

	t.Run("Portfolio toggle also gates the resume URL", func(t *testing.T) {
		settings := publicSettings("subject1")
		settings.FieldVisibility[domain.FieldPortfolio] = false
		view := uc.FilterProfileFields(profile, employer("rec1"), settings)
		assert.Empty(t, view.Portfolio)
		assert.Nil(t, view.ResumeURL)
	})

	t.Run("Nil settings produce the restricted stub", func(t *testing.T) {
		view := uc.FilterProfileFields(profile, employer("rec1"), nil)
		assert.NotNil(t, view.PublicProfile)
		assert.False(t, *view.PublicProfile)
		assert.Nil(t, view.FullName)
	})
}
