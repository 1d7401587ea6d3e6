package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/yeremiapane/table-booking/utils"
)

const DefaultSweepSchedule = "@hourly"

// ExpiryScheduler runs the periodic sweep on a cron schedule and keeps one one-shot job
// per pending booking that fires at its hold timeout.
type ExpiryScheduler struct {
	bookings *BookingService
	oneShot  gocron.Scheduler
	sweeper  *cron.Cron

	mu   sync.Mutex
	jobs map[uint]uuid.UUID
}

func NewExpiryScheduler(bookings *BookingService, sweepSpec string, loc *time.Location) (*ExpiryScheduler, error) {
	if sweepSpec == "" {
		sweepSpec = DefaultSweepSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	oneShot, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create hold scheduler: %w", err)
	}

	es := &ExpiryScheduler{
		bookings: bookings,
		oneShot:  oneShot,
		sweeper:  cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		jobs:     make(map[uint]uuid.UUID),
	}
	if _, err := es.sweeper.AddFunc(sweepSpec, es.sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", sweepSpec, err)
	}
	return es, nil
}

func (es *ExpiryScheduler) Start() {
	es.oneShot.Start()
	es.sweeper.Start()
	utils.InfoLogger.Println("Expiry scheduler started")
}

func (es *ExpiryScheduler) Stop() error {
	<-es.sweeper.Stop().Done()
	err := es.oneShot.Shutdown()
	utils.InfoLogger.Println("Expiry scheduler stopped")
	return err
}

// ScheduleHold arms the one-shot expiry for bookingID. Instants already in the past fire
// immediately.
func (es *ExpiryScheduler) ScheduleHold(bookingID uint, at time.Time) {
	start := gocron.OneTimeJobStartDateTime(at)
	if !at.After(time.Now()) {
		start = gocron.OneTimeJobStartImmediately()
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	job, err := es.oneShot.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(es.expire, bookingID),
		gocron.WithName(fmt.Sprintf("booking-hold-%d", bookingID)),
	)
	if err != nil {
		utils.ErrorLogger.Printf("Could not schedule hold expiry for booking %d: %v", bookingID, err)
		return
	}
	if prev, ok := es.jobs[bookingID]; ok {
		_ = es.oneShot.RemoveJob(prev)
	}
	es.jobs[bookingID] = job.ID()
}

func (es *ExpiryScheduler) CancelHold(bookingID uint) {
	es.mu.Lock()
	defer es.mu.Unlock()

	id, ok := es.jobs[bookingID]
	if !ok {
		return
	}
	delete(es.jobs, bookingID)
	if err := es.oneShot.RemoveJob(id); err != nil {
		utils.ErrorLogger.Printf("Could not remove hold job for booking %d: %v", bookingID, err)
	}
}

func (es *ExpiryScheduler) pending() int {
	es.mu.Lock()
	defer es.mu.Unlock()
	return len(es.jobs)
}

func (es *ExpiryScheduler) expire(bookingID uint) {
	es.mu.Lock()
	delete(es.jobs, bookingID)
	es.mu.Unlock()

	expired, err := es.bookings.ExpireBooking(bookingID)
	if err != nil {
		utils.ErrorLogger.Printf("Hold expiry for booking %d failed: %v", bookingID, err)
		return
	}
	if expired {
		utils.InfoLogger.Printf("Booking %d expired after hold timeout", bookingID)
	}
}

func (es *ExpiryScheduler) sweep() {
	if _, err := es.bookings.SweepExpired(); err != nil {
		utils.ErrorLogger.Printf("Expiry sweep failed: %v", err)
	}
}

// RunSweep runs one sweep now, outside the schedule.
func (es *ExpiryScheduler) RunSweep() (int, error) {
	return es.bookings.SweepExpired()
}
