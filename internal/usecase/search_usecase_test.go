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

func newSearchUsecase(profileRepo *MockProfileRepo, settingsRepo *MockSettingsRepo) domain.SearchUsecase {
	access := usecase.NewAccessUsecase(settingsRepo, &CapturingRecorder{})
	filter := usecase.NewProfileUsecase(profileRepo, settingsRepo, access)
	return usecase.NewSearchUsecase(profileRepo, settingsRepo, filter)
}

func searchItem(id string) domain.SearchResult {
	return domain.SearchResult{
		SubjectID:   id,
		DisplayName: "User " + id,
		Location:    "Berlin",
		Skills:      []string{"Go"},
	}
}

func TestFilterResults(t *testing.T) {
	ctx := context.Background()

	t.Run("Retention matrix by privacy level and searchable flag", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "pub").Return(publicSettings("pub"), nil)

		semiOn := semiPrivateSettings("semiOn")
		settingsRepo.On("GetBySubjectID", mock.Anything, "semiOn").Return(semiOn, nil)

		semiOff := semiPrivateSettings("semiOff")
		semiOff.SearchableByRecruiters = false
		settingsRepo.On("GetBySubjectID", mock.Anything, "semiOff").Return(semiOff, nil)

		// PRIVATE is never listed, even with the searchable flag set.
		priv := privateSettings("priv")
		priv.SearchableByRecruiters = true
		settingsRepo.On("GetBySubjectID", mock.Anything, "priv").Return(priv, nil)

		settingsRepo.On("GetBySubjectID", mock.Anything, "norow").Return(nil, nil)

		uc := newSearchUsecase(new(MockProfileRepo), settingsRepo)
		results := []domain.SearchResult{
			searchItem("pub"), searchItem("semiOn"), searchItem("semiOff"),
			searchItem("priv"), searchItem("norow"),
		}

		surviving, err := uc.FilterResults(ctx, employer("rec1"), results)
		assert.NoError(t, err)
		assert.Len(t, surviving, 2)
		assert.Equal(t, "pub", surviving[0].SubjectID)
		assert.Equal(t, "semiOn", surviving[1].SubjectID)
	})

	t.Run("Relative order of survivors is preserved", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "a").Return(publicSettings("a"), nil)
		settingsRepo.On("GetBySubjectID", mock.Anything, "b").Return(privateSettings("b"), nil)
		settingsRepo.On("GetBySubjectID", mock.Anything, "c").Return(publicSettings("c"), nil)

		uc := newSearchUsecase(new(MockProfileRepo), settingsRepo)
		surviving, err := uc.FilterResults(ctx, employer("rec1"),
			[]domain.SearchResult{searchItem("a"), searchItem("b"), searchItem("c")})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, []string{surviving[0].SubjectID, surviving[1].SubjectID})
	})

	t.Run("Subjects always see themselves in results", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		uc := newSearchUsecase(new(MockProfileRepo), settingsRepo)

		surviving, err := uc.FilterResults(ctx, candidate("me"), []domain.SearchResult{searchItem("me")})
		assert.NoError(t, err)
		assert.Len(t, surviving, 1)
		// No settings lookup needed for the self item.
		settingsRepo.AssertNotCalled(t, "GetBySubjectID", mock.Anything, mock.Anything)
	})

	t.Run("Per-item settings failure excludes that item only", func(t *testing.T) {
		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "ok1").Return(publicSettings("ok1"), nil)
		settingsRepo.On("GetBySubjectID", mock.Anything, "broken").Return(nil, errors.New("timeout"))
		settingsRepo.On("GetBySubjectID", mock.Anything, "ok2").Return(publicSettings("ok2"), nil)

		uc := newSearchUsecase(new(MockProfileRepo), settingsRepo)
		surviving, err := uc.FilterResults(ctx, employer("rec1"),
			[]domain.SearchResult{searchItem("ok1"), searchItem("broken"), searchItem("ok2")})
		assert.NoError(t, err)
		assert.Len(t, surviving, 2)
		assert.Equal(t, "ok1", surviving[0].SubjectID)
		assert.Equal(t, "ok2", surviving[1].SubjectID)
	})
}

func TestSearchCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("List views carry only visible fields", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("Search", mock.Anything, "golang", 20).
			Return([]domain.SearchResult{searchItem("s1"), searchItem("s2")}, nil)

		settingsRepo := new(MockSettingsRepo)
		settingsRepo.On("GetBySubjectID", mock.Anything, "s1").Return(publicSettings("s1"), nil)

		hidden := publicSettings("s2")
		hidden.FieldVisibility[domain.FieldLocation] = false
		hidden.FieldVisibility[domain.FieldSkills] = false
		settingsRepo.On("GetBySubjectID", mock.Anything, "s2").Return(hidden, nil)

		uc := newSearchUsecase(profileRepo, settingsRepo)
		views, err := uc.SearchCandidates(ctx, employer("rec1"), "golang", 0)
		assert.NoError(t, err)
		assert.Len(t, views, 2)

		assert.Equal(t, "Berlin", *views[0].Location)
		assert.Equal(t, []string{"Go"}, views[0].Skills)

		assert.Nil(t, views[1].Location)
		assert.Nil(t, views[1].Skills)
		assert.Equal(t, "User s2", views[1].DisplayName)
	})

	t.Run("Limit is clamped to the default", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("Search", mock.Anything, "q", 20).Return([]domain.SearchResult{}, nil)

		uc := newSearchUsecase(profileRepo, new(MockSettingsRepo))
		_, err := uc.SearchCandidates(ctx, employer("rec1"), "q", 5000)
		assert.NoError(t, err)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Search layer failure is an internal error", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("Search", mock.Anything, "q", 20).Return(nil, errors.New("index down"))

		uc := newSearchUsecase(profileRepo, new(MockSettingsRepo))
		_, err := uc.SearchCandidates(ctx, employer("rec1"), "q", 0)
		assert.Error(t, err)
	})
}
