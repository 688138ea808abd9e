package app

import "time"

// Countdown is the time left until voting closes.
type Countdown struct {
	Deadline time.Time `json:"deadline"`
	Expired  bool      `json:"expired"`
	Days     int       `json:"days"`
	Hours    int       `json:"hours"`
	Minutes  int       `json:"minutes"`
	Seconds  int       `json:"seconds"`
}

// CountdownTo splits the remaining time until deadline into display units.
// A zero deadline never expires. Votes are not blocked after expiry.
func CountdownTo(deadline, now time.Time) Countdown {
	c := Countdown{Deadline: deadline}
	if deadline.IsZero() {
		return c
	}

	left := deadline.Sub(now)
	if left <= 0 {
		c.Expired = true
		return c
	}

	total := int64(left / time.Second)
	c.Days = int(total / 86400)
	c.Hours = int(total / 3600 % 24)
	c.Minutes = int(total / 60 % 60)
	c.Seconds = int(total % 60)
	return c
}
