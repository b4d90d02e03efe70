// Package observability defines the application's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsDeleted counts soft-deleted posts.
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_deleted_total",
		Help: "Total number of posts soft-deleted",
	})

	// TagsCreated counts lazily created tags.
	TagsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_tags_created_total",
		Help: "Total number of tags created on first reference",
	})

	// BlobsStored counts blob-store writes by kind (original, thumbnail).
	BlobsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_blobs_stored_total",
		Help: "Total number of blobs written to storage",
	}, []string{"kind"})

	// BlobsDeleted counts blob-store deletes.
	BlobsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_blobs_deleted_total",
		Help: "Total number of blobs removed from storage",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
