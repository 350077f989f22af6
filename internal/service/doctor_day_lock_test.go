package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDoctorDayLockSerializesSameDay(t *testing.T) {
	lock := NewDoctorDayLock(logrus.New())
	defer lock.Stop()

	doctorID := uuid.New()
	var inCritical, maxInCritical int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lock.Lock(doctorID, "2026-03-02")
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInCritical, "at most one holder per doctor-day")
}

func TestDoctorDayLockIndependentKeys(t *testing.T) {
	lock := NewDoctorDayLock(logrus.New())
	defer lock.Stop()

	doctorID := uuid.New()
	unlockA := lock.Lock(doctorID, "2026-03-02")
	defer unlockA()

	// A different date for the same doctor must not block.
	done := make(chan struct{})
	go func() {
		unlockB := lock.Lock(doctorID, "2026-03-03")
		unlockB()
		close(done)
	}()
	<-done
}

func TestDoctorDayLockStopIdempotent(t *testing.T) {
	lock := NewDoctorDayLock(logrus.New())
	lock.Stop()
	lock.Stop()
}
