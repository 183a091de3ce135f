package usecase_test

import (
	"context"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/audit"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.PrivacySettings, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrivacySettings), args.Error(1)
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, settings *domain.PrivacySettings) error {
	return m.Called(ctx, settings).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.FullProfile, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FullProfile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.FullProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchResult), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, rec *domain.ContactRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockContactRepo) ListByTarget(ctx context.Context, targetID string) ([]domain.ContactRecord, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContactRecord), args.Error(1)
}

type MockGDPRRepo struct {
	mock.Mock
}

func (m *MockGDPRRepo) AnonymizeSubject(ctx context.Context, subjectID, token string) (int64, error) {
	args := m.Called(ctx, subjectID, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGDPRRepo) ListExpiredSubjects(ctx context.Context, now time.Time, defaultDays int) ([]string, error) {
	args := m.Called(ctx, now, defaultDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// CapturingRecorder collects audit events for assertions.
type CapturingRecorder struct {
	mu     sync.Mutex
	Events []audit.Event
	Err    error
}

func (r *CapturingRecorder) Record(ctx context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, event)
	return nil
}

func (r *CapturingRecorder) ByType(t audit.EventType) []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []audit.Event
	for _, e := range r.Events {
		if e.Event == t {
			out = append(out, e)
		}
	}
	return out
}

// Test fixtures

func publicSettings(subjectID string) *domain.PrivacySettings {
	return domain.NewDefaultPrivacySettings(subjectID)
}

func privateSettings(subjectID string) *domain.PrivacySettings {
	s := domain.NewDefaultPrivacySettings(subjectID)
	s.PrivacyLevel = domain.PrivacyPrivate
	s.SearchableByRecruiters = false
	s.AllowDirectContact = false
	return s
}

func semiPrivateSettings(subjectID string) *domain.PrivacySettings {
	s := domain.NewDefaultPrivacySettings(subjectID)
	s.PrivacyLevel = domain.PrivacySemiPrivate
	return s
}

func candidate(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleCandidate}
}

func employer(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleEmployer, IsVerified: true}
}

func admin(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleAdmin, IsVerified: true}
}

func testProfile(id string) *domain.FullProfile {
	salaryMin := int64(90000)
	salaryMax := int64(120000)
	return &domain.FullProfile{
		ID:          id,
		DisplayName: "J. Doe",
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+4915112345678",
		Location:    "Berlin",
		Skills:      []string{"Go", "PostgreSQL"},
		WorkExperiences: []domain.WorkExperience{
			{ID: 1, SubjectID: id, CompanyName: "Acme", JobTitle: "Engineer", StartDate: "2020-01-01"},
		},
		Educations: []domain.Education{
			{ID: 1, SubjectID: id, Institution: "TU Berlin", Degree: "BSc"},
		},
		Portfolio: []domain.PortfolioItem{
			{ID: 1, SubjectID: id, Title: "Side project", URL: "https://example.com"},
		},
		ResumeURL:            "https://cdn.example.com/cv.pdf",
		SalaryExpectationMin: &salaryMin,
		SalaryExpectationMax: &salaryMax,
		SalaryCurrency:       "EUR",
	}
}
