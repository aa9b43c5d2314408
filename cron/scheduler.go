package cron

import (
	"context"
	"fmt"
	"time"

	"auracare/services/payroll"
	"auracare/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single scheduled run.
const jobTimeout = 10 * time.Minute

type PayrollGenerator interface {
	GenerateForAllSalons(ctx context.Context, period string) (int, error)
}

type GiftCardSweeper interface {
	ExpireSweep(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic back-office jobs.
type Scheduler struct {
	Payroll   PayrollGenerator
	GiftCards GiftCardSweeper
	Now       func() time.Time

	c *robfig.Cron
}

func NewScheduler(p PayrollGenerator, g GiftCardSweeper) *Scheduler {
	return &Scheduler{Payroll: p, GiftCards: g, Now: time.Now}
}

// Register adds the jobs on the given five-field cron expressions. An empty one
// disables that job.
func (s *Scheduler) Register(payrollSpec, sweepSpec string) error {
	s.c = robfig.New(robfig.WithChain(robfig.Recover(robfig.DefaultLogger)))
	if payrollSpec != "" {
		if _, err := s.c.AddFunc(payrollSpec, s.runPayroll); err != nil {
			return fmt.Errorf("invalid PAYROLL_CRON %q: %w", payrollSpec, err)
		}
	}
	if sweepSpec != "" {
		if _, err := s.c.AddFunc(sweepSpec, s.runGiftCardSweep); err != nil {
			return fmt.Errorf("invalid GIFT_CARD_SWEEP_CRON %q: %w", sweepSpec, err)
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	if s.c == nil {
		return
	}
	s.c.Start()
	utils.GetLogger().Info("cron scheduler started", zap.Int("jobs", len(s.c.Entries())))
}

// Stop waits for running jobs or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.c == nil {
		return
	}
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}

// runPayroll drafts payslips for the month that just ended.
func (s *Scheduler) runPayroll() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	period := payroll.PreviousPeriod(s.Now())
	n, err := s.Payroll.GenerateForAllSalons(ctx, period)
	if err != nil {
		utils.GetLogger().Error("scheduled payroll failed", zap.String("period", period), zap.Error(err))
		return
	}
	utils.GetLogger().Info("scheduled payroll done", zap.String("period", period), zap.Int("salons", n))
}

func (s *Scheduler) runGiftCardSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.GiftCards.ExpireSweep(ctx)
	if err != nil {
		utils.GetLogger().Error("gift card sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		utils.GetLogger().Info("gift cards expired", zap.Int64("count", n))
	}
}
