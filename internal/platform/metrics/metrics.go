package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the workflow core.
type Metrics struct {
	LicensesIssued      prometheus.Counter
	LicenseNumberRedraw prometheus.Counter
	ShipmentsAdmitted   *prometheus.CounterVec
	RemindersEmitted    prometheus.Counter
	ReminderPublishErrs prometheus.Counter
	FAQCacheHits        prometheus.Counter
	FAQCacheMisses      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LicensesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_licenses_issued_total",
			Help: "Total number of export licenses issued",
		}),
		LicenseNumberRedraw: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_license_number_redraws_total",
			Help: "Total number of license-number redraws after a uniqueness collision",
		}),
		ShipmentsAdmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tradegate_shipments_admitted_total",
			Help: "Total number of shipments admitted, by final status",
		}, []string{"status"}),
		RemindersEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_renewal_reminders_total",
			Help: "Total number of renewal reminder facts published",
		}),
		ReminderPublishErrs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_renewal_reminder_publish_failures_total",
			Help: "Total number of reminder publish failures",
		}),
		FAQCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_faq_cache_hits_total",
			Help: "Total number of FAQ answers served from cache",
		}),
		FAQCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_faq_cache_misses_total",
			Help: "Total number of FAQ lookups that fell through to the store",
		}),
	}
}

// IncLicensesIssued increments the issued-license counter by 1.
func (m *Metrics) IncLicensesIssued() {
	if m != nil {
		m.LicensesIssued.Inc()
	}
}

// IncLicenseNumberRedraw counts a redraw after a generated-number collision.
func (m *Metrics) IncLicenseNumberRedraw() {
	if m != nil {
		m.LicenseNumberRedraw.Inc()
	}
}

// IncShipmentsAdmitted counts an admission under its final status.
func (m *Metrics) IncShipmentsAdmitted(status string) {
	if m != nil {
		m.ShipmentsAdmitted.WithLabelValues(status).Inc()
	}
}

// IncRemindersEmitted increments the published-reminder counter by 1.
func (m *Metrics) IncRemindersEmitted() {
	if m != nil {
		m.RemindersEmitted.Inc()
	}
}

// IncReminderPublishErrs counts a failed reminder publish.
func (m *Metrics) IncReminderPublishErrs() {
	if m != nil {
		m.ReminderPublishErrs.Inc()
	}
}

// IncFAQCacheHit counts an FAQ answer served from Redis.
func (m *Metrics) IncFAQCacheHit() {
	if m != nil {
		m.FAQCacheHits.Inc()
	}
}

// IncFAQCacheMiss counts an FAQ lookup that hit the store.
func (m *Metrics) IncFAQCacheMiss() {
	if m != nil {
		m.FAQCacheMisses.Inc()
	}
}
