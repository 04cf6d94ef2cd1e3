package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RP1999/healthcare-application/internal/models"
	"github.com/RP1999/healthcare-application/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory stores backing the handler tests. They mirror the Mongo
// repositories' contracts, including the unique-key behavior the real
// indexes provide.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by hex id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return dupKeyErr()
		}
	}
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*models.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[string]*models.Patient)}
}

// dupKeyErr mimics the write error a Mongo unique index raises, so
// repository.IsDuplicateKey treats this store like the real one.
func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *memPatientRepo) Insert(_ context.Context, p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.patients {
		if existing.NIC == p.NIC {
			return dupKeyErr()
		}
	}
	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.patients[p.ID.Hex()] = &cp
	return nil
}

func (r *memPatientRepo) FindByID(_ context.Context, id string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrPatientNotFound
}

func (r *memPatientRepo) FindByNIC(_ context.Context, nic string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.NIC == nic {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrPatientNotFound
}

func (r *memPatientRepo) Replace(_ context.Context, p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[p.ID.Hex()]; !ok {
		return repository.ErrPatientNotFound
	}
	for id, existing := range r.patients {
		if id != p.ID.Hex() && existing.NIC == p.NIC {
			return dupKeyErr()
		}
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	r.patients[p.ID.Hex()] = &cp
	return nil
}

func (r *memPatientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return repository.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *memPatientRepo) Find(_ context.Context, q repository.ListQuery) ([]*models.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.Patient, 0, len(r.patients))
	needle := strings.ToLower(q.Search)
	for _, p := range r.patients {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.NIC), needle) ||
			strings.Contains(strings.ToLower(p.Phone), needle) {
			cp := *p
			matched = append(matched, &cp)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch q.SortField {
		case "name":
			less = a.Name < b.Name
		case "nic":
			less = a.NIC < b.NIC
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if q.SortAsc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.PatientRepository = (*memPatientRepo)(nil)
)
