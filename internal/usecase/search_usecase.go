package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type searchUsecase struct {
	profileRepo  domain.ProfileRepository
	settingsRepo domain.PrivacySettingsRepository
	filter       domain.ProfileUsecase
}

func NewSearchUsecase(profileRepo domain.ProfileRepository, settingsRepo domain.PrivacySettingsRepository, filter domain.ProfileUsecase) domain.SearchUsecase {
	return &searchUsecase{
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
		filter:       filter,
	}
}

func (u *searchUsecase) SearchCandidates(ctx context.Context, principal domain.Principal, query string, limit int) ([]domain.ProfileView, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	raw, err := u.profileRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Filter before serialization, never after.
	surviving, err := u.FilterResults(ctx, principal, raw)
	if err != nil {
		return nil, err
	}

	// Reduced list view per survivor: the stub plus whatever list-relevant
	// fields the subject has made visible.
	views := make([]domain.ProfileView, 0, len(surviving))
	for _, item := range surviving {
		view := domain.ProfileView{
			ID:          item.SubjectID,
			DisplayName: item.DisplayName,
		}
		settings, err := u.settingsRepo.GetBySubjectID(ctx, item.SubjectID)
		if err != nil || settings == nil {
			// Survivors always have settings; a race with deletion just means
			// the stub.
			views = append(views, view)
			continue
		}
		if settings.FieldVisible(domain.FieldLocation) {
			loc := item.Location
			view.Location = &loc
		}
		if settings.FieldVisible(domain.FieldSkills) {
			view.Skills = item.Skills
		}
		views = append(views, view)
	}
	return views, nil
}

// FilterResults retains a candidate iff its profile is PUBLIC, or
// SEMI_PRIVATE with searchableByRecruiters enabled. PRIVATE profiles never
// appear in results. Relative order of survivors is preserved; a settings
// lookup failure excludes that one candidate and never fails the batch.
func (u *searchUsecase) FilterResults(ctx context.Context, principal domain.Principal, results []domain.SearchResult) ([]domain.SearchResult, error) {
	surviving := make([]domain.SearchResult, 0, len(results))
	for _, item := range results {
		// Subjects always see themselves.
		if principal.ID != "" && principal.ID == item.SubjectID {
			surviving = append(surviving, item)
			continue
		}

		settings, err := u.settingsRepo.GetBySubjectID(ctx, item.SubjectID)
		if err != nil {
			logger.Log.Error("excluding candidate from results, settings lookup failed",
				"subject_id", item.SubjectID, "error", err)
			continue
		}
		if settings == nil {
			continue
		}

		switch settings.PrivacyLevel {
		case domain.PrivacyPublic:
			surviving = append(surviving, item)
		case domain.PrivacySemiPrivate:
			if settings.SearchableByRecruiters {
				surviving = append(surviving, item)
			}
		}
		// PRIVATE: never listed, regardless of the searchable flag.
	}
	return surviving, nil
}
