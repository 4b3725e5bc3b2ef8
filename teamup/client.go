package teamup

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const dateFormat = "2006-01-02"

// Event is a single calendar entry, validated at the client boundary.
// Title doubles as the team-name key into the roster store. Who, Notes
// and Location are optional and empty when the calendar omits them.
type Event struct {
	ID             string
	Title          string
	Start          time.Time
	End            time.Time
	Who            string
	Notes          string
	Location       string
	SubcalendarIDs []int64
}

// Client talks to the TeamUp calendar API.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	subcalendars map[int64]string
}

// New creates a client for the given calendar and fetches the subcalendar
// map once. A failed subcalendar fetch degrades to an empty map; event
// classification then returns "Unknown".
func New(calendarID, apiKey string) *Client {
	return newWithBase("https://api.teamup.com/"+calendarID, apiKey)
}

func newWithBase(baseURL, apiKey string) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	subcals, err := c.fetchSubcalendars()
	if err != nil {
		log.Printf("Warning: Error fetching subcalendars: %v", err)
		subcals = map[int64]string{}
	}
	c.subcalendars = subcals
	return c
}

// Events fetches events between two inclusive YYYY-MM-DD dates.
func (c *Client) Events(startDate, endDate string) ([]Event, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)

	var payload struct {
		Events []eventDTO `json:"events"`
	}
	if err := c.get("/events?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(payload.Events))
	for _, dto := range payload.Events {
		ev, err := dto.toEvent()
		if err != nil {
			log.Printf("Warning: Skipping malformed event %s: %v", dto.ID, err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// Upcoming fetches events from today through today+days.
func (c *Client) Upcoming(days int) ([]Event, error) {
	now := time.Now()
	start := now.Format(dateFormat)
	end := now.AddDate(0, 0, days).Format(dateFormat)
	return c.Events(start, end)
}

// Event fetches a single event by ID.
func (c *Client) Event(id string) (*Event, error) {
	var payload struct {
		Event eventDTO `json:"event"`
	}
	if err := c.get("/events/"+url.PathEscape(id), &payload); err != nil {
		return nil, err
	}
	ev, err := payload.Event.toEvent()
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	return &ev, nil
}

// SubcalendarName maps subcalendar IDs to a display name for the event
// type. The first ID is used when several are present; "Unknown" when
// none map.
func (c *Client) SubcalendarName(ids []int64) string {
	if len(ids) == 0 {
		return "Unknown"
	}
	if name, ok := c.subcalendars[ids[0]]; ok {
		return name
	}
	return "Unknown"
}

func (c *Client) fetchSubcalendars() (map[int64]string, error) {
	var payload struct {
		Subcalendars []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"subcalendars"`
	}
	if err := c.get("/subcalendars", &payload); err != nil {
		return nil, err
	}
	subcals := make(map[int64]string, len(payload.Subcalendars))
	for _, sub := range payload.Subcalendars {
		subcals[sub.ID] = sub.Name
	}
	return subcals, nil
}

func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Teamup-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making API call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API call failed with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding API response: %w", err)
	}
	return nil
}

// eventDTO is the wire shape. TeamUp sends either subcalendar_id or
// subcalendar_ids depending on the event.
type eventDTO struct {
	ID             json.Number `json:"id"`
	Title          string      `json:"title"`
	StartDt        string      `json:"start_dt"`
	EndDt          string      `json:"end_dt"`
	Who            string      `json:"who"`
	Notes          string      `json:"notes"`
	Location       string      `json:"location"`
	SubcalendarID  int64       `json:"subcalendar_id"`
	SubcalendarIDs []int64     `json:"subcalendar_ids"`
}

func (d eventDTO) toEvent() (Event, error) {
	start, err := time.Parse(time.RFC3339, d.StartDt)
	if err != nil {
		return Event{}, fmt.Errorf("parsing start_dt %q: %w", d.StartDt, err)
	}
	end, err := time.Parse(time.RFC3339, d.EndDt)
	if err != nil {
		return Event{}, fmt.Errorf("parsing end_dt %q: %w", d.EndDt, err)
	}

	ids := d.SubcalendarIDs
	if len(ids) == 0 && d.SubcalendarID != 0 {
		ids = []int64{d.SubcalendarID}
	}

	return Event{
		ID:             d.ID.String(),
		Title:          d.Title,
		Start:          start,
		End:            end,
		Who:            d.Who,
		Notes:          d.Notes,
		Location:       d.Location,
		SubcalendarIDs: ids,
	}, nil
}
