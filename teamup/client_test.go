package teamup

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const subcalendarsBody = `{"subcalendars":[
	{"id":7,"name":"Scrim"},
	{"id":8,"name":"Official Match"}
]}`

func newTestServer(t *testing.T, eventsBody string, eventsStatus int) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/subcalendars", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Teamup-Token") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, subcalendarsBody)
	})
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		if eventsStatus != http.StatusOK {
			w.WriteHeader(eventsStatus)
			return
		}
		fmt.Fprint(w, eventsBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, newWithBase(srv.URL, "test-key")
}

func TestEventsParsesTypedRecords(t *testing.T) {
	body := `{"events":[
		{"id":1430508241,"title":"Alpha","start_dt":"2025-02-17T15:00:00Z",
		 "end_dt":"2025-02-17T17:00:00Z","who":"Rivals","notes":"bring VODs",
		 "location":"EU server","subcalendar_ids":[7,8]},
		{"id":"1430508242","title":"Bravo","start_dt":"2025-02-18T19:30:00+01:00",
		 "end_dt":"2025-02-18T21:00:00+01:00","subcalendar_id":8}
	]}`
	_, c := newTestServer(t, body, http.StatusOK)

	events, err := c.Events("2025-02-17", "2025-02-24")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	first := events[0]
	if first.ID != "1430508241" {
		t.Errorf("ID = %q, want 1430508241", first.ID)
	}
	if first.Title != "Alpha" || first.Who != "Rivals" || first.Location != "EU server" {
		t.Errorf("unexpected fields: %+v", first)
	}
	wantStart := time.Date(2025, 2, 17, 15, 0, 0, 0, time.UTC)
	if !first.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", first.Start, wantStart)
	}
	if len(first.SubcalendarIDs) != 2 || first.SubcalendarIDs[0] != 7 {
		t.Errorf("SubcalendarIDs = %v, want [7 8]", first.SubcalendarIDs)
	}

	// Single subcalendar_id is folded into the list form.
	second := events[1]
	if len(second.SubcalendarIDs) != 1 || second.SubcalendarIDs[0] != 8 {
		t.Errorf("SubcalendarIDs = %v, want [8]", second.SubcalendarIDs)
	}
}

func TestEventsSkipsMalformedEntries(t *testing.T) {
	body := `{"events":[
		{"id":1,"title":"Bad","start_dt":"yesterday-ish","end_dt":"2025-02-17T17:00:00Z"},
		{"id":2,"title":"Good","start_dt":"2025-02-17T15:00:00Z","end_dt":"2025-02-17T17:00:00Z"}
	]}`
	_, c := newTestServer(t, body, http.StatusOK)

	events, err := c.Events("2025-02-17", "2025-02-17")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Good" {
		t.Errorf("events = %+v, want only the well-formed entry", events)
	}
}

func TestEventsNon2xxIsAnError(t *testing.T) {
	_, c := newTestServer(t, "", http.StatusBadGateway)
	if _, err := c.Events("2025-02-17", "2025-02-17"); err == nil {
		t.Fatal("Events on 502 returned nil error")
	}
}

func TestEventByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subcalendars", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, subcalendarsBody)
	})
	mux.HandleFunc("/events/99", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"event":{"id":99,"title":"Alpha",
			"start_dt":"2025-02-17T15:00:00Z","end_dt":"2025-02-17T17:00:00Z"}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newWithBase(srv.URL, "test-key")

	ev, err := c.Event("99")
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if ev.ID != "99" || ev.Title != "Alpha" {
		t.Errorf("event = %+v, want ID 99 / Alpha", ev)
	}

	if _, err := c.Event("404"); err == nil {
		t.Error("Event on unknown ID returned nil error")
	}
}

func TestSubcalendarName(t *testing.T) {
	_, c := newTestServer(t, `{"events":[]}`, http.StatusOK)

	tests := []struct {
		name string
		ids  []int64
		want string
	}{
		{"known id", []int64{7}, "Scrim"},
		{"first of list wins", []int64{8, 7}, "Official Match"},
		{"unknown id", []int64{999}, "Unknown"},
		{"empty list", nil, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.SubcalendarName(tt.ids); got != tt.want {
				t.Errorf("SubcalendarName(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestSubcalendarFetchFailureDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subcalendars", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newWithBase(srv.URL, "test-key")
	if got := c.SubcalendarName([]int64{7}); got != "Unknown" {
		t.Errorf("SubcalendarName after failed fetch = %q, want Unknown", got)
	}
}
