package ports

import "time"

// Clock fuente de tiempo inyectada en los casos de uso.
type Clock func() time.Time

// SystemClock reloj real.
func SystemClock() time.Time { return time.Now() }

// FixedClock reloj congelado, para tests.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
