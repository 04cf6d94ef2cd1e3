package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RP1999/healthcare-application/internal/models"
	"github.com/RP1999/healthcare-application/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNICTaken   = errors.New("nic already exists")
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// sortFields whitelists the sort keys a caller may use and maps them to the
// stored field names. Unknown keys fall back to creation time.
var sortFields = map[string]string{
	"name":      "name",
	"nic":       "nic",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// CreatePatientInput carries a create request. Name and NIC are required
// after trimming; everything else is optional.
type CreatePatientInput struct {
	Name   string
	NIC    string
	Phone  string
	Gender string
	DOB    string
}

// UpdatePatientInput carries a partial update. Nil means "leave the current
// value alone"; only supplied fields are overwritten.
type UpdatePatientInput struct {
	Name   *string
	NIC    *string
	Phone  *string
	Gender *string
	DOB    *string
}

// ListPatientsInput is the raw, unclamped query from the caller.
type ListPatientsInput struct {
	Search string
	Page   int64
	Limit  int64
	Sort   string
	Order  string
}

// PatientPage is a single page of a listing plus the total match count
// across all pages.
type PatientPage struct {
	Data  []*models.Patient `json:"data"`
	Total int64             `json:"total"`
	Page  int64             `json:"page"`
	Limit int64             `json:"limit"`
}

type PatientService struct {
	repo repository.PatientRepository
	log  *zap.Logger
}

func NewPatientService(repo repository.PatientRepository, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, log: log}
}

func (s *PatientService) List(ctx context.Context, in ListPatientsInput) (*PatientPage, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	field, ok := sortFields[in.Sort]
	if !ok {
		field = sortFields["createdAt"]
	}

	q := repository.ListQuery{
		Search:    strings.TrimSpace(in.Search),
		Skip:      (page - 1) * limit,
		Limit:     limit,
		SortField: field,
		SortAsc:   strings.EqualFold(in.Order, "asc"),
	}
	patients, total, err := s.repo.Find(ctx, q)
	if err != nil {
		s.log.Error("list patients failed", zap.Error(err))
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return &PatientPage{Data: patients, Total: total, Page: page, Limit: limit}, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PatientService) Create(ctx context.Context, in CreatePatientInput) (*models.Patient, error) {
	name := strings.TrimSpace(in.Name)
	nic := strings.TrimSpace(in.NIC)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if nic == "" {
		return nil, fmt.Errorf("%w: nic is required", ErrValidation)
	}

	gender := in.Gender
	if gender == "" {
		gender = models.GenderMale
	}
	if !models.ValidGender(gender) {
		return nil, fmt.Errorf("%w: gender must be Male, Female or Other", ErrValidation)
	}

	dob, err := parseDOB(in.DOB)
	if err != nil {
		return nil, err
	}

	// Fast-fail; the unique nic index catches races.
	if _, err := s.repo.FindByNIC(ctx, nic); err == nil {
		return nil, ErrNICTaken
	} else if !errors.Is(err, repository.ErrPatientNotFound) {
		return nil, fmt.Errorf("check nic: %w", err)
	}

	p := &models.Patient{
		Name:   name,
		NIC:    nic,
		Phone:  strings.TrimSpace(in.Phone),
		Gender: gender,
		DOB:    dob,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrNICTaken
		}
		s.log.Error("create patient failed", zap.Error(err))
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *PatientService) Update(ctx context.Context, id string, in UpdatePatientInput) (*models.Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NIC != nil {
		nic := strings.TrimSpace(*in.NIC)
		if nic == "" {
			return nil, fmt.Errorf("%w: nic cannot be empty", ErrValidation)
		}
		if nic != p.NIC {
			if _, err := s.repo.FindByNIC(ctx, nic); err == nil {
				return nil, ErrNICTaken
			} else if !errors.Is(err, repository.ErrPatientNotFound) {
				return nil, fmt.Errorf("check nic: %w", err)
			}
		}
		p.NIC = nic
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		p.Name = name
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Gender != nil {
		if !models.ValidGender(*in.Gender) {
			return nil, fmt.Errorf("%w: gender must be Male, Female or Other", ErrValidation)
		}
		p.Gender = *in.Gender
	}
	if in.DOB != nil {
		dob, err := parseDOB(*in.DOB)
		if err != nil {
			return nil, err
		}
		p.DOB = dob
	}

	if err := s.repo.Replace(ctx, p); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrNICTaken
		}
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, err
		}
		s.log.Error("update patient failed", zap.Error(err))
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// parseDOB accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date. An empty
// string means the date of birth is unset.
func parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: dob must be an RFC 3339 timestamp or YYYY-MM-DD", ErrValidation)
}
