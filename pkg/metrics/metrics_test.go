package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	TicketsCreated.Inc()
	HTTPRequests.WithLabelValues("GET", "/tickets", "200").Inc()

	n, err := testutil.GatherAndCount(reg, "ticketdesk_tickets_created_total", "ticketdesk_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// registering twice on the same registry must panic
	require.Panics(t, func() { RegisterCollectors(reg) })
}
