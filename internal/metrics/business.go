package metrics

func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

func (m *Metrics) IncrementProjectDuplicated() {
	m.safeExecute("IncrementProjectDuplicated", func() {
		m.ProjectDuplicatedTotal.Inc()
	})
}

func (m *Metrics) IncrementTaskToggle() {
	m.safeExecute("IncrementTaskToggle", func() {
		m.TaskTogglesTotal.Inc()
	})
}

func (m *Metrics) IncrementOnboardingSubmission() {
	m.safeExecute("IncrementOnboardingSubmission", func() {
		m.OnboardingSubmissionsTotal.Inc()
	})
}

// RecordPasscodeVerification counts gate checks; result is granted, denied or unknown_project.
func (m *Metrics) RecordPasscodeVerification(result string) {
	m.safeExecute("RecordPasscodeVerification", func() {
		m.PasscodeVerificationsTotal.WithLabelValues(result).Inc()
	})
}

func (m *Metrics) IncrementCommentCreated(userType string) {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentsCreatedTotal.WithLabelValues(userType).Inc()
	})
}

// SetProjectGauges publishes the dashboard counters.
func (m *Metrics) SetProjectGauges(total, active, launchingSoon int) {
	m.safeExecute("SetProjectGauges", func() {
		m.ProjectsTotal.Set(float64(total))
		m.ProjectsActive.Set(float64(active))
		m.ProjectsLaunchingSoon.Set(float64(launchingSoon))
	})
}
