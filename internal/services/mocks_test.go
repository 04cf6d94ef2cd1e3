package services

import (
	"context"
	"errors"

	"github.com/RP1999/healthcare-application/internal/models"
	"github.com/RP1999/healthcare-application/internal/repository"
)

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, u *models.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

var _ repository.PatientRepository = (*mockPatientRepo)(nil)

type mockPatientRepo struct {
	InsertFunc    func(ctx context.Context, p *models.Patient) error
	FindByIDFunc  func(ctx context.Context, id string) (*models.Patient, error)
	FindByNICFunc func(ctx context.Context, nic string) (*models.Patient, error)
	ReplaceFunc   func(ctx context.Context, p *models.Patient) error
	DeleteFunc    func(ctx context.Context, id string) error
	FindFunc      func(ctx context.Context, q repository.ListQuery) ([]*models.Patient, int64, error)
}

func (m *mockPatientRepo) Insert(ctx context.Context, p *models.Patient) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrPatientNotFound
}

func (m *mockPatientRepo) FindByNIC(ctx context.Context, nic string) (*models.Patient, error) {
	if m.FindByNICFunc != nil {
		return m.FindByNICFunc(ctx, nic)
	}
	return nil, repository.ErrPatientNotFound
}

func (m *mockPatientRepo) Replace(ctx context.Context, p *models.Patient) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *mockPatientRepo) Find(ctx context.Context, q repository.ListQuery) ([]*models.Patient, int64, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, q)
	}
	return nil, 0, nil
}
