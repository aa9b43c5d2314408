package memory

import (
	"context"
	"sort"
	"time"

	"auracare/models"
)

type SalonRepo struct{ t *table[models.Salon] }

func NewSalonRepo() *SalonRepo { return &SalonRepo{t: newTable[models.Salon]()} }

func (r *SalonRepo) Create(_ context.Context, s *models.Salon) error {
	s.Email = normalizeEmail(s.Email)
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.t.insert(s.ID, *s)
	return nil
}

func (r *SalonRepo) GetByID(_ context.Context, id string) (*models.Salon, error) {
	return r.t.get(id), nil
}

func (r *SalonRepo) GetByOwnerID(_ context.Context, ownerID string) (*models.Salon, error) {
	if ownerID == "" {
		return nil, nil
	}
	return r.t.find(func(s *models.Salon) bool { return s.OwnerID == ownerID }), nil
}

func (r *SalonRepo) GetByEmail(_ context.Context, email string) (*models.Salon, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return r.t.find(func(s *models.Salon) bool { return s.Email == email }), nil
}

func (r *SalonRepo) Update(_ context.Context, s *models.Salon) error {
	s.UpdatedAt = time.Now()
	return r.t.replace(s.ID, *s)
}

func (r *SalonRepo) LinkOwner(_ context.Context, id, ownerID string) (bool, error) {
	return r.t.mutate(id, func(s *models.Salon) bool {
		if s.OwnerID != "" {
			return false
		}
		s.OwnerID = ownerID
		s.UpdatedAt = time.Now()
		return true
	}), nil
}

func (r *SalonRepo) List(_ context.Context, status string, q models.PageQuery) ([]models.Salon, int64, error) {
	salons := r.t.filter(func(s *models.Salon) bool { return status == "" || s.Status == status })
	sortNewest(salons, func(s *models.Salon) time.Time { return s.CreatedAt })
	items, total := page(salons, q)
	return items, total, nil
}

func (r *SalonRepo) ListByStatus(_ context.Context, status string) ([]models.Salon, error) {
	return r.t.filter(func(s *models.Salon) bool { return s.Status == status }), nil
}

type StaffRepo struct{ t *table[models.Staff] }

func NewStaffRepo() *StaffRepo { return &StaffRepo{t: newTable[models.Staff]()} }

func (r *StaffRepo) Create(_ context.Context, s *models.Staff) error {
	s.Email = normalizeEmail(s.Email)
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.t.insert(s.ID, *s)
	return nil
}

func (r *StaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	return r.t.get(id), nil
}

func (r *StaffRepo) GetByUserID(_ context.Context, userID string) (*models.Staff, error) {
	if userID == "" {
		return nil, nil
	}
	return r.t.find(func(s *models.Staff) bool { return s.UserID == userID }), nil
}

func (r *StaffRepo) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return r.t.find(func(s *models.Staff) bool { return s.Email == email }), nil
}

func (r *StaffRepo) LinkUser(_ context.Context, id, userID string) (bool, error) {
	return r.t.mutate(id, func(s *models.Staff) bool {
		if s.UserID != "" {
			return false
		}
		s.UserID = userID
		return true
	}), nil
}

func (r *StaffRepo) Update(_ context.Context, s *models.Staff) error {
	s.UpdatedAt = time.Now()
	return r.t.replace(s.ID, *s)
}

func (r *StaffRepo) Delete(_ context.Context, id string) error {
	return r.t.remove(id)
}

func (r *StaffRepo) ListBySalon(_ context.Context, salonID string, activeOnly bool) ([]models.Staff, error) {
	staff := r.t.filter(func(s *models.Staff) bool {
		return s.SalonID == salonID && (!activeOnly || s.IsActive())
	})
	sort.Slice(staff, func(i, j int) bool { return staff[i].Name < staff[j].Name })
	return staff, nil
}

func (r *StaffRepo) ListIDsBySalon(ctx context.Context, salonID string) ([]string, error) {
	staff, _ := r.ListBySalon(ctx, salonID, false)
	ids := make([]string, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

type ServiceRepo struct{ t *table[models.Service] }

func NewServiceRepo() *ServiceRepo { return &ServiceRepo{t: newTable[models.Service]()} }

func (r *ServiceRepo) Create(_ context.Context, s *models.Service) error {
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.t.insert(s.ID, *s)
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	return r.t.get(id), nil
}

func (r *ServiceRepo) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	return r.t.filter(func(s *models.Service) bool { return contains(ids, s.ID) }), nil
}

func (r *ServiceRepo) ListBySalon(_ context.Context, salonID string, activeOnly bool) ([]models.Service, error) {
	services := r.t.filter(func(s *models.Service) bool {
		return s.SalonID == salonID && (!activeOnly || s.Active)
	})
	sort.Slice(services, func(i, j int) bool {
		if services[i].Category != services[j].Category {
			return services[i].Category < services[j].Category
		}
		return services[i].Name < services[j].Name
	})
	return services, nil
}

func (r *ServiceRepo) Update(_ context.Context, s *models.Service) error {
	s.UpdatedAt = time.Now()
	return r.t.replace(s.ID, *s)
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	return r.t.remove(id)
}
