package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RewardMetrics covers the cascade engine.
type RewardMetrics struct {
	TiersCompletedTotal     prometheus.CounterVec
	TiersReplicatedTotal    prometheus.CounterVec
	RewardCreditedTotal     prometheus.CounterVec
	CommissionCreditedTotal prometheus.CounterVec
	CascadeDepth            prometheus.HistogramVec
}

func NewRewardMetrics() *RewardMetrics {
	return &RewardMetrics{
		TiersCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "card_tiers_completed_total",
				Help: "Card tiers completed and rewarded",
			},
			[]string{"campaign_id"},
		),
		TiersReplicatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "card_tiers_replicated_total",
				Help: "Card tiers auto-created by spillover replication",
			},
			[]string{"campaign_id"},
		),
		RewardCreditedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reward_credited_amount_total",
				Help: "Total reward amount credited to vendor balances",
			},
			[]string{"campaign_id"},
		),
		CommissionCreditedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_credited_amount_total",
				Help: "Total commission amount credited to manager balances",
			},
			[]string{"campaign_id"},
		),
		CascadeDepth: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cascade_tiers_walked",
				Help:    "Tiers walked per sale-validation cascade",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"campaign_id"},
		),
	}
}

func (m *RewardMetrics) RecordTierCompleted(campaignID string, vendorAmount, managerAmount float64) {
	m.TiersCompletedTotal.WithLabelValues(campaignID).Inc()
	m.RewardCreditedTotal.WithLabelValues(campaignID).Add(vendorAmount)
	if managerAmount > 0 {
		m.CommissionCreditedTotal.WithLabelValues(campaignID).Add(managerAmount)
	}
}

func (m *RewardMetrics) RecordTierReplicated(campaignID string) {
	m.TiersReplicatedTotal.WithLabelValues(campaignID).Inc()
}

func (m *RewardMetrics) RecordCascadeDepth(campaignID string, tiersWalked int) {
	m.CascadeDepth.WithLabelValues(campaignID).Observe(float64(tiersWalked))
}

// SettlementMetrics covers the batch payout lifecycle.
type SettlementMetrics struct {
	BatchesGeneratedTotal prometheus.Counter
	BatchesProcessedTotal prometheus.Counter
	BatchesCancelledTotal prometheus.Counter
	ReportsGeneratedTotal prometheus.Counter
	ReportsProcessedTotal prometheus.Counter
	AmountReservedTotal   prometheus.Counter
	AmountSettledTotal    prometheus.Counter
	SettlementDuration    prometheus.Histogram
}

func NewSettlementMetrics() *SettlementMetrics {
	return &SettlementMetrics{
		BatchesGeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_batches_generated_total",
			Help: "Payment batches generated",
		}),
		BatchesProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_batches_processed_total",
			Help: "Payment batches settled",
		}),
		BatchesCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_batches_cancelled_total",
			Help: "Payment batches cancelled",
		}),
		ReportsGeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_reports_generated_total",
			Help: "Payout reports created by batch generation",
		}),
		ReportsProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_reports_processed_total",
			Help: "Payout reports settled",
		}),
		AmountReservedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_amount_reserved_total",
			Help: "Total amount moved from available to reserved balances",
		}),
		AmountSettledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payout_amount_settled_total",
			Help: "Total amount debited from reserved balances on settlement",
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payout_settlement_duration_seconds",
			Help:    "Wall time of settlement transactions",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
}
