package repository

import (
	"context"

	"auracare/database/mongoutil"
	appointmentRepo "auracare/database/repository/appointment"
	customerRepo "auracare/database/repository/customer"
	feedbackRepo "auracare/database/repository/feedback"
	giftCardRepo "auracare/database/repository/giftcard"
	payrollRepo "auracare/database/repository/payroll"
	policyRepo "auracare/database/repository/policy"
	salonRepo "auracare/database/repository/salon"
	scheduleRepo "auracare/database/repository/schedule"
	serviceRepo "auracare/database/repository/service"
	staffRepo "auracare/database/repository/staff"
	userRepo "auracare/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Re-export the repository interfaces so callers need a single import.
type (
	UserRepository               = userRepo.UserRepository
	CustomerRepository           = customerRepo.CustomerRepository
	SalonRepository              = salonRepo.SalonRepository
	StaffRepository              = staffRepo.StaffRepository
	ServiceRepository            = serviceRepo.ServiceRepository
	AppointmentRepository        = appointmentRepo.AppointmentRepository
	ScheduleRequestRepository    = scheduleRepo.ScheduleRequestRepository
	GiftCardRepository           = giftCardRepo.GiftCardRepository
	FeedbackRepository           = feedbackRepo.FeedbackRepository
	CancellationPolicyRepository = policyRepo.CancellationPolicyRepository
	PayrollRepository            = payrollRepo.PayrollRepository
)

var (
	ErrNotFound  = mongoutil.ErrNotFound
	ErrDuplicate = mongoutil.ErrDuplicate
)

// Set bundles one implementation of every repository.
type Set struct {
	Users        UserRepository
	Customers    CustomerRepository
	Salons       SalonRepository
	Staff        StaffRepository
	Services     ServiceRepository
	Appointments AppointmentRepository
	Schedules    ScheduleRequestRepository
	GiftCards    GiftCardRepository
	Feedback     FeedbackRepository
	Policies     CancellationPolicyRepository
	Payrolls     PayrollRepository

	indexers []indexer
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewMongoSet builds every repository on top of db.
func NewMongoSet(db *mongo.Database) *Set {
	users := userRepo.NewMongoUserRepo(db)
	customers := customerRepo.NewMongoCustomerRepo(db)
	salons := salonRepo.NewMongoSalonRepo(db)
	staff := staffRepo.NewMongoStaffRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)
	schedules := scheduleRepo.NewMongoScheduleRequestRepo(db)
	giftCards := giftCardRepo.NewMongoGiftCardRepo(db)
	feedback := feedbackRepo.NewMongoFeedbackRepo(db)
	policies := policyRepo.NewMongoPolicyRepo(db)
	payrolls := payrollRepo.NewMongoPayrollRepo(db)

	return &Set{
		Users:        users,
		Customers:    customers,
		Salons:       salons,
		Staff:        staff,
		Services:     services,
		Appointments: appointments,
		Schedules:    schedules,
		GiftCards:    giftCards,
		Feedback:     feedback,
		Policies:     policies,
		Payrolls:     payrolls,
		indexers: []indexer{
			users, customers, salons, staff, services, appointments,
			schedules, giftCards, feedback, policies, payrolls,
		},
	}
}

// EnsureIndexes creates the indexes of every Mongo-backed repository. Failures
// are logged and do not stop startup; the last one is returned.
func (s *Set) EnsureIndexes(ctx context.Context, logger *zap.Logger) error {
	var lastErr error
	for _, ix := range s.indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			logger.Error("failed to create indexes", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}
