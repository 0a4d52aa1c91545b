// Package metrics defines all custom Prometheus metrics for the sweet shop
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens implicitly via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// PurchasesTotal counts successful purchases.
// Label:
//   - category: the sweet's category (e.g. "Bengali")
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of successful purchases, by sweet category.",
	},
	[]string{"category"},
)

// OutOfStockTotal counts purchase attempts rejected because quantity was zero.
var OutOfStockTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "out_of_stock_total",
		Help:      "Total number of purchase attempts rejected for empty stock.",
	},
)

// RestocksTotal counts successful restock operations.
// Label:
//   - category: the sweet's category
var RestocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of restock operations, by sweet category.",
	},
	[]string{"category"},
)

// SweetsCreatedTotal counts newly created sweets.
// Label:
//   - category: the sweet's category
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of sweets created, by category.",
	},
	[]string{"category"},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (fell through to Mongo)
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
