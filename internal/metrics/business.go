package metrics

// IncrementEventsCreated increments the event creation counter
func (m *Metrics) IncrementEventsCreated() {
	m.safeExecute("IncrementEventsCreated", func() {
		m.EventCreatedTotal.Inc()
	})
}

// IncrementSignups increments the successful signup counter
func (m *Metrics) IncrementSignups() {
	m.safeExecute("IncrementSignups", func() {
		m.SignupTotal.Inc()
	})
}

// IncrementWithdrawals increments the withdrawal counter
func (m *Metrics) IncrementWithdrawals() {
	m.safeExecute("IncrementWithdrawals", func() {
		m.WithdrawalTotal.Inc()
	})
}

// IncrementCapacityExceeded increments the full-event rejection counter
func (m *Metrics) IncrementCapacityExceeded() {
	m.safeExecute("IncrementCapacityExceeded", func() {
		m.CapacityExceededTotal.Inc()
	})
}

// SetEventsTotal sets the total events gauge
func (m *Metrics) SetEventsTotal(count int64) {
	m.safeExecute("SetEventsTotal", func() {
		m.EventsTotal.Set(float64(count))
	})
}

// SetActiveSignupsTotal sets the active signups gauge
func (m *Metrics) SetActiveSignupsTotal(count int64) {
	m.safeExecute("SetActiveSignupsTotal", func() {
		m.ActiveSignupsTotal.Set(float64(count))
	})
}
