package jobs

import (
	"log"
	"time"

	"github.com/axlerator/axlerator-backend/internal/services"
)

const sweepInterval = 10 * time.Minute

// CleanupJob periodically removes expired OTP challenges and verified
// records past the freshness window.
type CleanupJob struct {
	otpService *services.OTPService
	stop       chan struct{}
	isRunning  bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(otpService *services.OTPService) *CleanupJob {
	return &CleanupJob{
		otpService: otpService,
		stop:       make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}
	j.isRunning = true
	log.Println("Starting OTP cleanup job...")

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping OTP cleanup job...")
}

func (j *CleanupJob) sweep() {
	removed, err := j.otpService.Sweep()
	if err != nil {
		log.Printf("OTP sweep error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("OTP sweep removed %d stale records", removed)
	}
}
