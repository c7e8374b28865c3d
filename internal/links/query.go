package links

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/geocoder89/eventmanager/internal/domain/event"
	"github.com/geocoder89/eventmanager/internal/domain/packet"
)

type queryParam struct {
	key   string
	value string
}

// encodeQuery keeps the given order, unlike url.Values.Encode which sorts.
// Empty values are skipped.
func encodeQuery(params []queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// event filters serialize as location, name.
func eventQuery(f event.ListEventsFilter) []queryParam {
	return []queryParam{
		{"location", deref(f.Location)},
		{"name", deref(f.Name)},
	}
}

// packet filters serialize as page, items_per_page, available_tickets, type.
// Pagination is always echoed with its effective values.
func packetQuery(q packet.ListPacketsQuery) []queryParam {
	page, size := q.Effective()

	tickets := ""
	if q.AvailableTickets != nil {
		tickets = strconv.Itoa(*q.AvailableTickets)
	}

	return []queryParam{
		{"page", strconv.Itoa(page)},
		{"items_per_page", strconv.Itoa(size)},
		{"available_tickets", tickets},
		{"type", deref(q.Type)},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
