package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "press_posts_created_total",
			Help: "Total number of draft posts created",
		},
	)

	postsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "press_posts_published_total",
			Help: "Total number of posts published",
		},
	)

	publishRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "press_publish_rejected_total",
			Help: "Publish attempts rejected by a precondition",
		},
		[]string{"reason"},
	)

	commentsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "press_comments_submitted_total",
			Help: "Total number of comments submitted for moderation",
		},
	)

	commentsModeratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "press_comments_moderated_total",
			Help: "Total number of comments moderated, by outcome",
		},
		[]string{"status"},
	)

	replyFetchDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "press_reply_fetch_degraded_total",
			Help: "Reply fetches that failed and were shown as empty",
		},
	)
)
