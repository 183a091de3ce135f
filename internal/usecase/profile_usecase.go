package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type profileUsecase struct {
	profileRepo  domain.ProfileRepository
	settingsRepo domain.PrivacySettingsRepository
	access       domain.AccessUsecase
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, settingsRepo domain.PrivacySettingsRepository, access domain.AccessUsecase) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
		access:       access,
	}
}

func (u *profileUsecase) GetOwnProfile(ctx context.Context, principal domain.Principal) (*domain.FullProfile, error) {
	if principal.IsAnonymous() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := u.profileRepo.GetBySubjectID(ctx, principal.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return profile, nil
}

func (u *profileUsecase) GetProfileView(ctx context.Context, principal domain.Principal, subjectID string) (*domain.ProfileView, error) {
	// One settings fetch feeds both the gate and the filter.
	settings, err := u.settingsRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		logger.Log.Error("privacy settings lookup failed",
			"target_id", subjectID, "error", err)
		settings = nil
	}

	decision, err := u.access.DecideWith(ctx, principal, subjectID, domain.ActionRead, settings)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed && decision.Reason != domain.ReasonMissingSettings {
		return nil, apperror.AccessDenied(string(decision.Reason))
	}

	// The gate ran first; only now touch the profile data.
	profile, err := u.profileRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}

	if !decision.Allowed {
		// Missing settings: minimal public stub only.
		return missingSettingsStub(profile), nil
	}

	return u.FilterProfileFields(profile, principal, settings), nil
}

// FilterProfileFields reduces a profile to the view the principal may see.
// It assumes read access has already been granted and does not re-check it.
func (u *profileUsecase) FilterProfileFields(profile *domain.FullProfile, principal domain.Principal, settings *domain.PrivacySettings) *domain.ProfileView {
	// Self gets everything, unfiltered.
	if principal.ID != "" && principal.ID == profile.ID {
		return fullView(profile)
	}

	if settings == nil {
		return missingSettingsStub(profile)
	}

	// Start from the minimal stub; display name is required to render any
	// result item and is not itself gated.
	view := &domain.ProfileView{
		ID:          profile.ID,
		DisplayName: profile.DisplayName,
	}

	if settings.FieldVisible(domain.FieldFullName) {
		view.FullName = &profile.FullName
	}
	if settings.FieldVisible(domain.FieldEmail) {
		view.Email = &profile.Email
	}
	if settings.FieldVisible(domain.FieldPhoneNumber) {
		view.PhoneNumber = &profile.PhoneNumber
	}
	if settings.FieldVisible(domain.FieldLocation) {
		view.Location = &profile.Location
	}
	if settings.FieldVisible(domain.FieldWorkExperience) {
		view.WorkExperiences = profile.WorkExperiences
	}
	if settings.FieldVisible(domain.FieldEducation) {
		view.Educations = profile.Educations
	}
	if settings.FieldVisible(domain.FieldSkills) {
		view.Skills = profile.Skills
	}
	if settings.FieldVisible(domain.FieldPortfolio) {
		view.Portfolio = profile.Portfolio
		if profile.ResumeURL != "" {
			view.ResumeURL = &profile.ResumeURL
		}
	}

	// Salary fields have their own toggle, independent of the per-field map.
	if settings.ShowSalaryExpectations {
		view.SalaryExpectationMin = profile.SalaryExpectationMin
		view.SalaryExpectationMax = profile.SalaryExpectationMax
		if profile.SalaryCurrency != "" {
			view.SalaryCurrency = &profile.SalaryCurrency
		}
	}

	return view
}

func missingSettingsStub(profile *domain.FullProfile) *domain.ProfileView {
	public := false
	return &domain.ProfileView{
		ID:            profile.ID,
		DisplayName:   profile.DisplayName,
		PublicProfile: &public,
	}
}

func fullView(p *domain.FullProfile) *domain.ProfileView {
	view := &domain.ProfileView{
		ID:                   p.ID,
		DisplayName:          p.DisplayName,
		FullName:             &p.FullName,
		Email:                &p.Email,
		PhoneNumber:          &p.PhoneNumber,
		Location:             &p.Location,
		Skills:               p.Skills,
		WorkExperiences:      p.WorkExperiences,
		Educations:           p.Educations,
		Portfolio:            p.Portfolio,
		SalaryExpectationMin: p.SalaryExpectationMin,
		SalaryExpectationMax: p.SalaryExpectationMax,
	}
	if p.ResumeURL != "" {
		view.ResumeURL = &p.ResumeURL
	}
	if p.SalaryCurrency != "" {
		view.SalaryCurrency = &p.SalaryCurrency
	}
	return view
}
