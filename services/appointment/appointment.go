package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/notification"
	"auracare/services/salon"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   string
}

// ReminderScheduler schedules the customer reminder of a booked appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// AppointmentService defines booking and appointment lifecycle operations.
type AppointmentService interface {
	Book(ctx context.Context, customerUserID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	ListForCustomer(ctx context.Context, customerUserID string, q models.PageQuery) (*models.Page[models.Appointment], error)
	ListForSalon(ctx context.Context, ownerID, status string, q models.PageQuery) (*models.Page[models.Appointment], error)
	ListForStaff(ctx context.Context, staffUserID string, q models.PageQuery) (*models.Page[models.Appointment], error)
	UpdateStatus(ctx context.Context, ownerID, appointmentID, status string) (*models.Appointment, error)
	Cancel(ctx context.Context, actor Actor, appointmentID, reason string) (*models.Appointment, error)
	ReassignStaff(ctx context.Context, ownerID, appointmentID, staffID string) (*models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Appointments repository.AppointmentRepository
	Services     repository.ServiceRepository
	Staff        repository.StaffRepository
	Customers    repository.CustomerRepository
	Salons       repository.SalonRepository
	Policies     repository.CancellationPolicyRepository
	Resolver     salon.Resolver
	Notifier     notification.Notifier
	Reminders    ReminderScheduler
	Now          func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAppointmentService) Book(ctx context.Context, customerUserID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	serviceIDs := dedupe(req.ServiceIDs)
	if len(serviceIDs) == 0 {
		return nil, apperr.Validation("at least one service is required")
	}
	if !req.StartTime.After(s.now()) {
		return nil, apperr.Validation("startTime must be in the future")
	}

	customer, err := s.Customers.GetByUserID(ctx, customerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, apperr.NotFound("customer profile not found")
	}

	target, err := s.Salons.GetByID(ctx, req.SalonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon: %w", err)
	}
	if target == nil {
		return nil, apperr.NotFound("salon not found")
	}
	if target.Status != models.SalonStatusApproved {
		return nil, apperr.Validation("salon is not accepting bookings")
	}

	snapshot, err := s.snapshotServices(ctx, target.ID, serviceIDs)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		SalonID:    target.ID,
		Services:   snapshot,
		StartTime:  req.StartTime,
		Status:     models.AppointmentPending,
		Notes:      strings.TrimSpace(req.Notes),
	}
	var minutes int
	var total float64
	for _, svc := range snapshot {
		minutes += svc.DurationMinutes
		total += svc.Price
	}
	appt.EndTime = appt.StartTime.Add(time.Duration(minutes) * time.Minute)
	appt.TotalAmount = models.RoundMoney(total)

	var staff *models.Staff
	if req.StaffID != "" {
		staff, err = s.eligibleStaff(ctx, req.StaffID, appt)
		if err != nil {
			return nil, err
		}
		appt.StaffID = staff.ID
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("salonID", appt.SalonID),
		zap.String("staffID", appt.StaffID),
	)

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	if staff != nil {
		notification.StaffAssigned(ctx, s.Notifier, staff.UserID, appt)
	}
	return appt, nil
}

// snapshotServices copies the booked services in request order.
func (s *DefaultAppointmentService) snapshotServices(ctx context.Context, salonID string, ids []string) ([]models.AppointmentService, error) {
	found, err := s.Services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	byID := make(map[string]models.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	out := make([]models.AppointmentService, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || svc.SalonID != salonID {
			return nil, apperr.Validation("service %s is not offered by this salon", id)
		}
		if !svc.Active {
			return nil, apperr.Validation("service %s is not currently available", svc.Name)
		}
		out = append(out, models.AppointmentService{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Category:        svc.Category,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return out, nil
}

// eligibleStaff checks that the staff member works at the appointment's
// salon, is active, has the skills and is free for the slot.
func (s *DefaultAppointmentService) eligibleStaff(ctx context.Context, staffID string, appt *models.Appointment) (*models.Staff, error) {
	staff, err := s.Staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if staff == nil {
		return nil, apperr.NotFound("staff member not found")
	}
	if staff.SalonID != appt.SalonID {
		return nil, apperr.Forbidden("staff member does not work at this salon")
	}
	if !staff.IsActive() {
		return nil, apperr.Validation("staff member is not active")
	}
	if missing := MissingSkills(staff.Skills, appt.Categories()); len(missing) > 0 {
		return nil, apperr.Validation("staff member lacks skills for: %s", strings.Join(missing, ", "))
	}

	busy, err := s.Appointments.HasOverlap(ctx, staff.ID, appt.StartTime, appt.EndTime, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff availability: %w", err)
	}
	if busy {
		return nil, apperr.Conflict("staff member already has an appointment at that time")
	}
	return staff, nil
}

func (s *DefaultAppointmentService) ListForCustomer(ctx context.Context, customerUserID string, q models.PageQuery) (*models.Page[models.Appointment], error) {
	customer, err := s.Customers.GetByUserID(ctx, customerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return models.NewPage[models.Appointment](nil, 0, q), nil
	}
	appts, total, err := s.Appointments.ListByCustomer(ctx, customer.ID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return models.NewPage(appts, total, q), nil
}

var knownStatuses = map[string]bool{
	models.AppointmentPending:   true,
	models.AppointmentConfirmed: true,
	models.AppointmentCompleted: true,
	models.AppointmentCancelled: true,
	models.AppointmentNoShow:    true,
}

func (s *DefaultAppointmentService) ListForSalon(ctx context.Context, ownerID, status string, q models.PageQuery) (*models.Page[models.Appointment], error) {
	if status != "" && !knownStatuses[status] {
		return nil, apperr.Validation("unknown appointment status %q", status)
	}
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	appts, total, err := s.Appointments.ListBySalon(ctx, owned.ID, status, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return models.NewPage(appts, total, q), nil
}

func (s *DefaultAppointmentService) ListForStaff(ctx context.Context, staffUserID string, q models.PageQuery) (*models.Page[models.Appointment], error) {
	staff, err := s.Resolver.ResolveStaffForUser(ctx, staffUserID)
	if err != nil {
		return nil, err
	}
	appts, total, err := s.Appointments.ListByStaff(ctx, staff.ID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return models.NewPage(appts, total, q), nil
}

func (s *DefaultAppointmentService) load(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt == nil {
		return nil, apperr.NotFound("appointment not found")
	}
	return appt, nil
}

func (s *DefaultAppointmentService) ownedAppointment(ctx context.Context, ownerID, id string) (*models.Appointment, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.SalonID != owned.ID {
		return nil, apperr.Forbidden("appointment belongs to another salon")
	}
	return appt, nil
}

func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, ownerID, appointmentID, status string) (*models.Appointment, error) {
	if !knownStatuses[status] {
		return nil, apperr.Validation("unknown appointment status %q", status)
	}
	appt, err := s.ownedAppointment(ctx, ownerID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, status) {
		return nil, apperr.Conflict("appointment cannot move from %s to %s", appt.Status, status)
	}

	switch status {
	case models.AppointmentNoShow:
		policy, err := salon.EffectivePolicy(ctx, s.Policies, appt.SalonID)
		if err != nil {
			return nil, err
		}
		appt.CancellationFee = NoShowFee(policy, appt)
	case models.AppointmentCancelled:
		appt.CancelledBy = models.RoleSalon
		appt.CancellationFee = 0
	}
	appt.Status = status

	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, actor Actor, appointmentID, reason string) (*models.Appointment, error) {
	var (
		appt     *models.Appointment
		customer *models.Customer
		err      error
	)
	switch actor.Role {
	case models.RoleCustomer:
		customer, err = s.Customers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load customer: %w", err)
		}
		appt, err = s.load(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if customer == nil || appt.CustomerID != customer.ID {
			return nil, apperr.Forbidden("you can only cancel your own appointments")
		}
	case models.RoleSalon:
		appt, err = s.ownedAppointment(ctx, actor.UserID, appointmentID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Forbidden("only customers and salon owners can cancel appointments")
	}

	if !IsOpen(appt.Status) {
		return nil, apperr.Conflict("appointment is already %s", appt.Status)
	}

	appt.CancellationFee = 0
	if actor.Role == models.RoleCustomer {
		policy, err := salon.EffectivePolicy(ctx, s.Policies, appt.SalonID)
		if err != nil {
			return nil, err
		}
		appt.CancellationFee = LateCancellationFee(policy, appt, s.now())
	}
	appt.Status = models.AppointmentCancelled
	appt.CancelledBy = actor.Role
	appt.CancelReason = strings.TrimSpace(reason)

	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	s.notifyCancellation(ctx, actor, appt)
	return appt, nil
}

// notifyCancellation tells the staff member, and the customer when the salon cancelled.
func (s *DefaultAppointmentService) notifyCancellation(ctx context.Context, actor Actor, appt *models.Appointment) {
	if appt.StaffID != "" {
		if staff, err := s.Staff.GetByID(ctx, appt.StaffID); err == nil && staff != nil {
			notification.AppointmentCancelled(ctx, s.Notifier, staff.UserID, appt)
		}
	}
	if actor.Role == models.RoleSalon {
		if customer, err := s.Customers.GetByID(ctx, appt.CustomerID); err == nil && customer != nil {
			notification.AppointmentCancelled(ctx, s.Notifier, customer.UserID, appt)
		}
	}
}

func (s *DefaultAppointmentService) ReassignStaff(ctx context.Context, ownerID, appointmentID, staffID string) (*models.Appointment, error) {
	if staffID == "" {
		return nil, apperr.Validation("staffId is required")
	}
	appt, err := s.ownedAppointment(ctx, ownerID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !IsOpen(appt.Status) {
		return nil, apperr.Conflict("cannot reassign a %s appointment", appt.Status)
	}

	staff, err := s.eligibleStaff(ctx, staffID, appt)
	if err != nil {
		return nil, err
	}
	appt.StaffID = staff.ID
	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to reassign appointment: %w", err)
	}

	utils.GetLogger().Info("appointment reassigned",
		zap.String("appointmentID", appt.ID),
		zap.String("staffID", staff.ID),
	)
	notification.StaffAssigned(ctx, s.Notifier, staff.UserID, appt)
	return appt, nil
}

func dedupe(ids []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
