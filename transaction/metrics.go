package transaction

import (
	"time"

	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	executedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starknet_executor",
		Name:      "transactions",
		Help:      "Executed transactions by type and outcome",
	}, []string{"type", "outcome"})
	executionTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "starknet_executor",
		Name:      "transaction_execution_seconds",
		Help:      "Time spent executing a transaction",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"type"})
)

func observe(txType execution.TransactionType, info *execution.TransactionExecutionInfo, err error, took time.Duration) {
	executedTransactions.WithLabelValues(txType.String(), outcome(info, err)).Inc()
	executionTime.WithLabelValues(txType.String()).Observe(took.Seconds())
}
