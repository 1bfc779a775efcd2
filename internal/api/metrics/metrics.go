// Package metrics defines the custom Prometheus metrics for the DonateHub
// platform API. It is the single source of truth for metric names, labels,
// and help strings; metrics register themselves with the default registry
// at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donatehub"

// SignupsTotal counts completed signups (verification email delivered).
// Label:
//   - role: "donor" or "ngo"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by requested role.",
	},
	[]string{"role"},
)

// OTPIssuedTotal counts one-time codes dispatched by email.
// Label:
//   - purpose: "verify" (email verification) or "login"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes dispatched, by purpose.",
	},
	[]string{"purpose"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_credentials", "verification_required", "code_rejected", "throttled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// CampaignsCreatedTotal counts newly created campaigns.
var CampaignsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaigns_created_total",
		Help:      "Total number of campaigns created.",
	},
)

// DonationsTotal counts successfully recorded donations.
var DonationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_total",
		Help:      "Total number of donations recorded.",
	},
)

// DonationAmount observes the monetary amount of each recorded donation.
var DonationAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "donation_amount",
		Help:      "Distribution of recorded donation amounts.",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 7), // 1 up to 1,000,000
	},
)
