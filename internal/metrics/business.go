package metrics

// Sequence lifecycle events
const (
	SequenceStarted   = "started"
	SequenceAdvanced  = "advanced"
	SequenceCompleted = "completed"
	SequenceCancelled = "cancelled"
	SequenceRebuilt   = "rebuilt"
)

// IncrementTemplateCreated increments template creation counter
func (m *Metrics) IncrementTemplateCreated() {
	m.safeExecute("IncrementTemplateCreated", func() {
		m.TemplateCreatedTotal.Inc()
	})
}

// AddSubmissionsCreated adds n stored submissions
func (m *Metrics) AddSubmissionsCreated(n int) {
	m.safeExecute("AddSubmissionsCreated", func() {
		m.SubmissionCreatedTotal.Add(float64(n))
	})
}

// RecordSequenceEvent counts a sequence lifecycle event
func (m *Metrics) RecordSequenceEvent(event string) {
	m.safeExecute("RecordSequenceEvent", func() {
		m.SequenceEventsTotal.WithLabelValues(event).Inc()
	})
}

// RecordValidationFailure counts a rejected submission. source is "sequence" or "submission".
func (m *Metrics) RecordValidationFailure(source string) {
	m.safeExecute("RecordValidationFailure", func() {
		m.FormValidationFailures.WithLabelValues(source).Inc()
	})
}

// AddUploadsCleanedUp adds n removed temporary uploads
func (m *Metrics) AddUploadsCleanedUp(n int) {
	m.safeExecute("AddUploadsCleanedUp", func() {
		m.UploadsCleanedUpTotal.Add(float64(n))
	})
}

// SetTemplatesTotal sets total templates gauge
func (m *Metrics) SetTemplatesTotal(count int64) {
	m.safeExecute("SetTemplatesTotal", func() {
		m.TemplatesTotal.Set(float64(count))
	})
}

// SetSubmissionsTotal sets total submissions gauge
func (m *Metrics) SetSubmissionsTotal(count int64) {
	m.safeExecute("SetSubmissionsTotal", func() {
		m.SubmissionsTotal.Set(float64(count))
	})
}
