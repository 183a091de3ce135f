package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type contactFixture struct {
	settingsRepo *MockSettingsRepo
	profileRepo  *MockProfileRepo
	contactRepo  *MockContactRepo
	recorder     *CapturingRecorder
	uc           domain.ContactUsecase
}

func newContactFixture() *contactFixture {
	f := &contactFixture{
		settingsRepo: new(MockSettingsRepo),
		profileRepo:  new(MockProfileRepo),
		contactRepo:  new(MockContactRepo),
		recorder:     &CapturingRecorder{},
	}
	access := usecase.NewAccessUsecase(f.settingsRepo, f.recorder)
	f.uc = usecase.NewContactUsecase(access, f.profileRepo, f.contactRepo, nil)
	return f
}

func contactReq() *domain.ContactRequest {
	return &domain.ContactRequest{
		Subject: "Backend role at Acme",
		Message: "We would like to discuss an opening with you.",
	}
}

func TestRequestContact(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail when anonymous", func(t *testing.T) {
		f := newContactFixture()
		err := f.uc.RequestContact(ctx, domain.AnonymousPrincipal(), "subject1", contactReq())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should fail on blank subject or message", func(t *testing.T) {
		f := newContactFixture()
		req := contactReq()
		req.Message = "   "
		err := f.uc.RequestContact(ctx, employer("rec1"), "subject1", req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "subject and message are required")
	})

	t.Run("Unverified employer accounts are rejected", func(t *testing.T) {
		f := newContactFixture()
		unverified := domain.Principal{ID: "rec1", Role: domain.RoleEmployer}
		err := f.uc.RequestContact(ctx, unverified, "subject1", contactReq())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only verified accounts can contact candidates")
	})

	t.Run("Denied by contact preference, with audit trace", func(t *testing.T) {
		f := newContactFixture()
		settings := publicSettings("subject1")
		settings.AllowDirectContact = false
		f.settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(settings, nil)

		err := f.uc.RequestContact(ctx, employer("rec1"), "subject1", contactReq())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied due to privacy settings")
		assert.Len(t, f.recorder.ByType(audit.EventContactDenied), 1)
		f.contactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Candidates cannot contact other candidates", func(t *testing.T) {
		f := newContactFixture()
		f.settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(publicSettings("subject1"), nil)

		err := f.uc.RequestContact(ctx, candidate("other"), "subject1", contactReq())
		assert.Error(t, err)
		assert.Len(t, f.recorder.ByType(audit.EventContactDenied), 1)
	})

	t.Run("Allowed contact persists a record", func(t *testing.T) {
		f := newContactFixture()
		f.settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(publicSettings("subject1"), nil)
		f.profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(testProfile("subject1"), nil)
		f.contactRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactRecord")).Return(nil).
			Run(func(args mock.Arguments) {
				rec := args.Get(1).(*domain.ContactRecord)
				assert.Equal(t, "rec1", rec.ViewerID)
				assert.Equal(t, "subject1", rec.TargetID)
				assert.Equal(t, "Backend role at Acme", rec.Subject)
			})

		err := f.uc.RequestContact(ctx, employer("rec1"), "subject1", contactReq())
		assert.NoError(t, err)
		assert.Len(t, f.recorder.ByType(audit.EventContactAllowed), 1)
		f.contactRepo.AssertExpectations(t)
	})

	t.Run("Persistence failure surfaces as internal error", func(t *testing.T) {
		f := newContactFixture()
		f.settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(publicSettings("subject1"), nil)
		f.profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(testProfile("subject1"), nil)
		f.contactRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		err := f.uc.RequestContact(ctx, employer("rec1"), "subject1", contactReq())
		assert.Error(t, err)
	})

	t.Run("Vanished target after an allow is a 404", func(t *testing.T) {
		f := newContactFixture()
		f.settingsRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(publicSettings("subject1"), nil)
		f.profileRepo.On("GetBySubjectID", mock.Anything, "subject1").Return(nil, nil)

		err := f.uc.RequestContact(ctx, employer("rec1"), "subject1", contactReq())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Candidate not found")
	})
}
