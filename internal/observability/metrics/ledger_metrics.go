package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the constant labels applied to every ledger metric.
type Config struct {
	ServiceName string
	Environment string
}

// LedgerMetrics instruments the activity/billing ledger hot paths.
type LedgerMetrics struct {
	checkouts    *prometheus.CounterVec
	activities   *prometheus.CounterVec
	installments prometheus.Counter
	transactions *prometheus.CounterVec
	pointsDebits prometheus.Counter
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

// Ledger returns the process-wide ledger metrics.
func Ledger() *LedgerMetrics {
	return LedgerWithConfig(Config{})
}

// LedgerWithConfig returns the process-wide ledger metrics, registering them
// on first use with the provided constant labels.
func LedgerWithConfig(cfg Config) *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = newLedgerMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return ledgerMetrics
}

// ResetLedgerMetricsForTest clears the singleton between test runs.
func ResetLedgerMetricsForTest() {
	ledgerMetricsOnce = sync.Once{}
	ledgerMetrics = nil
}

func newLedgerMetrics(registerer prometheus.Registerer, cfg Config) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "kheops"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	checkouts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "kheops_checkouts_total",
			Help:        "Completed checkouts by payment type.",
			ConstLabels: constLabels,
		},
		[]string{"payment_type"},
	)
	activities := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "kheops_activities_created_total",
			Help:        "Activity line items created by payment type.",
			ConstLabels: constLabels,
		},
		[]string{"payment_type"},
	)
	installments := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "kheops_installments_recorded_total",
			Help:        "Installment payments recorded against open activities.",
			ConstLabels: constLabels,
		},
	)
	transactions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "kheops_ledger_transactions_total",
			Help:        "Ledger transactions appended by type.",
			ConstLabels: constLabels,
		},
		[]string{"type"},
	)
	pointsDebits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "kheops_loyalty_debits_total",
			Help:        "Loyalty point debits applied.",
			ConstLabels: constLabels,
		},
	)

	for _, collector := range []prometheus.Collector{checkouts, activities, installments, transactions, pointsDebits} {
		if err := registerer.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}

	return &LedgerMetrics{
		checkouts:    checkouts,
		activities:   activities,
		installments: installments,
		transactions: transactions,
		pointsDebits: pointsDebits,
	}
}

// IncCheckout records a completed checkout and its created line items.
func (m *LedgerMetrics) IncCheckout(paymentType string, items int) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(paymentType).Inc()
	if items > 0 {
		m.activities.WithLabelValues(paymentType).Add(float64(items))
	}
}

// IncInstallment records a recorded installment payment.
func (m *LedgerMetrics) IncInstallment() {
	if m == nil {
		return
	}
	m.installments.Inc()
}

// IncTransaction records an appended ledger transaction.
func (m *LedgerMetrics) IncTransaction(transactionType string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(transactionType).Inc()
}

// IncPointsDebit records a successful loyalty point debit.
func (m *LedgerMetrics) IncPointsDebit() {
	if m == nil {
		return
	}
	m.pointsDebits.Inc()
}
