package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale day locks
	lockCleanupInterval = 10 * time.Minute

	// How long a day lock must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// DoctorDayLock serializes the check-then-write sequence of booking
// per (doctor, date). Two concurrent booking attempts for the same
// doctor-day must not both observe "no conflict" and both insert; the
// lock is held across the conflict check and the appointment insert.
// The unique index on (doctor_id, appointment_date, start_time) stays
// as the storage-level safety net for exact-start duplicates only.
//
// Locks are created lazily per key and reaped by a background
// goroutine once unused; Stop() shuts that goroutine down.
type DoctorDayLock struct {
	log *logrus.Logger

	locks sync.Map // map[string]*dayMutex

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// dayMutex tracks mutex usage for cleanup
type dayMutex struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewDoctorDayLock creates the lock service and starts its cleanup
// goroutine. Call Stop() during graceful shutdown.
func NewDoctorDayLock(log *logrus.Logger) *DoctorDayLock {
	l := &DoctorDayLock{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Lock acquires the exclusive token for a doctor-day and returns the
// release function. Callers defer the release so every exit path,
// including error paths, gives the token back.
func (l *DoctorDayLock) Lock(doctorID uuid.UUID, dateKey string) func() {
	dm := l.getDayMutex(lockKey(doctorID, dateKey))
	dm.mu.Lock()
	return dm.mu.Unlock
}

// Stop gracefully shuts down the cleanup goroutine.
// Safe to call multiple times.
func (l *DoctorDayLock) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
		l.log.Info("DoctorDayLock stopped")
	}
}

func lockKey(doctorID uuid.UUID, dateKey string) string {
	return fmt.Sprintf("%s:%s", doctorID, dateKey)
}

func (l *DoctorDayLock) getDayMutex(key string) *dayMutex {
	dm, _ := l.locks.LoadOrStore(key, &dayMutex{})
	result := dm.(*dayMutex)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (l *DoctorDayLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanupStaleLocks()
		}
	}
}

// cleanupStaleLocks removes unused mutexes using TryLock for safety;
// the lastUsed check happens inside the lock so a fresh acquisition
// between check and delete cannot be reaped.
func (l *DoctorDayLock) cleanupStaleLocks() {
	cutoff := time.Now().Add(-lockStaleThreshold).Unix()
	var cleaned int

	l.locks.Range(func(key, value any) bool {
		dm, ok := value.(*dayMutex)
		if !ok {
			return true
		}
		if dm.mu.TryLock() {
			if dm.lastUsed.Load() < cutoff {
				l.locks.Delete(key)
				cleaned++
			}
			dm.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale day locks", cleaned)
	}
}
