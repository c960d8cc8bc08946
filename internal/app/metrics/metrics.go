// Package metrics регистрирует Prometheus-метрики сервиса лицензий в default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы покупки для метки outcome
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeInsufficient = "insufficient_funds"
	OutcomeContention   = "contention"
	OutcomeError        = "error"
)

var (
	Purchases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "licensestore",
		Name:      "purchases_total",
		Help:      "Purchase requests by outcome.",
	}, []string{"outcome"})

	LicensesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "licensestore",
		Name:      "licenses_issued_total",
		Help:      "Licenses created, by issuance path.",
	}, []string{"path"})

	BalanceDebited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "licensestore",
		Name:      "balance_debited_total",
		Help:      "Sum of debited balance in smallest currency units.",
	})

	EntitlementChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "licensestore",
		Name:      "entitlement_checks_total",
		Help:      "License key lookups by operation and result.",
	}, []string{"operation", "result"})

	PurchaseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "licensestore",
		Name:      "purchase_transaction_seconds",
		Help:      "Time spent inside the purchase transaction, lock wait included.",
		Buckets:   prometheus.DefBuckets,
	})
)
