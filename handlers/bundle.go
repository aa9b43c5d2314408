package handlers

import (
	"auracare/database/repository"
	"auracare/services/admin"
	"auracare/services/appointment"
	"auracare/services/auth"
	"auracare/services/feedback"
	"auracare/services/forecast"
	"auracare/services/giftcard"
	"auracare/services/notification"
	"auracare/services/payroll"
	"auracare/services/salon"
	"auracare/services/schedule"
	"auracare/utils"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Salon        *SalonHandler
	Appointments *AppointmentHandler
	Schedule     *ScheduleHandler
	Payroll      *PayrollHandler
	GiftCards    *GiftCardHandler
	Feedback     *FeedbackHandler
	Admin        *AdminHandler
	Forecast     *ForecastHandler
	Health       *HealthHandler

	// Services shared with background jobs.
	PayrollService  payroll.PayrollService
	GiftCardService giftcard.GiftCardService
}

// Deps are the infrastructure pieces services are built from. Reminders,
// SalonCache and Revoker may be nil.
type Deps struct {
	Repos           *repository.Set
	JWT             *utils.JWTManager
	Revoker         *utils.TokenRevoker
	SalonCache      *utils.JSONCache
	Notifier        notification.Notifier
	Reminders       appointment.ReminderScheduler
	Predictor       forecast.Predictor
	Health          *utils.HealthMonitor
	PFRatePercent   float64
	ProfessionalTax float64
}

// NewHandlerBundle wires services on top of deps and wraps them in handlers.
func NewHandlerBundle(d Deps) *HandlerBundle {
	repos := d.Repos
	resolver := &salon.DefaultResolver{
		Salons: repos.Salons,
		Users:  repos.Users,
		Staff:  repos.Staff,
		Cache:  d.SalonCache,
	}
	salonSvc := &salon.DefaultSalonService{
		Salons:   repos.Salons,
		Users:    repos.Users,
		Staff:    repos.Staff,
		Services: repos.Services,
		Policies: repos.Policies,
		Resolver: resolver,
	}
	apptSvc := &appointment.DefaultAppointmentService{
		Appointments: repos.Appointments,
		Services:     repos.Services,
		Staff:        repos.Staff,
		Customers:    repos.Customers,
		Salons:       repos.Salons,
		Policies:     repos.Policies,
		Resolver:     resolver,
		Notifier:     d.Notifier,
		Reminders:    d.Reminders,
	}
	payrollSvc := &payroll.DefaultPayrollService{
		Payrolls:        repos.Payrolls,
		Staff:           repos.Staff,
		Schedules:       repos.Schedules,
		Salons:          repos.Salons,
		Resolver:        resolver,
		PFRatePercent:   d.PFRatePercent,
		ProfessionalTax: d.ProfessionalTax,
	}
	giftSvc := &giftcard.DefaultGiftCardService{
		Cards:    repos.GiftCards,
		Salons:   repos.Salons,
		Resolver: resolver,
	}
	forecastSvc := &forecast.DefaultForecastService{
		Appointments: repos.Appointments,
		Resolver:     resolver,
		Predictor:    d.Predictor,
	}

	return &HandlerBundle{
		Auth: &AuthHandler{Service: &auth.DefaultAuthService{
			Users:     repos.Users,
			Customers: repos.Customers,
			Staff:     repos.Staff,
			JWT:       d.JWT,
			Revoker:   d.Revoker,
		}},
		Salon: &SalonHandler{
			Salons:   salonSvc,
			Catalog:  salonSvc,
			Staff:    salonSvc,
			Policies: salonSvc,
		},
		Appointments: &AppointmentHandler{Service: apptSvc},
		Schedule: &ScheduleHandler{Service: &schedule.DefaultScheduleService{
			Requests: repos.Schedules,
			Staff:    repos.Staff,
			Resolver: resolver,
			Notifier: d.Notifier,
		}},
		Payroll:   &PayrollHandler{Service: payrollSvc},
		GiftCards: &GiftCardHandler{Service: giftSvc},
		Feedback: &FeedbackHandler{Service: &feedback.DefaultFeedbackService{
			Feedback: repos.Feedback,
			Staff:    repos.Staff,
			Resolver: resolver,
		}},
		Admin: &AdminHandler{
			Service: &admin.DefaultAdminService{
				Salons:       repos.Salons,
				Users:        repos.Users,
				Appointments: repos.Appointments,
				GiftCards:    repos.GiftCards,
				Status:       salonSvc,
			},
			Forecast: forecastSvc,
		},
		Forecast: &ForecastHandler{Service: forecastSvc},
		Health:   &HealthHandler{Monitor: d.Health},

		PayrollService:  payrollSvc,
		GiftCardService: giftSvc,
	}
}
