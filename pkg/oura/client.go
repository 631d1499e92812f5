package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"healthdiary-backend/pkg/cache"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.ouraring.com/v2/usercollection"
	cacheTTL       = time.Hour
)

// Client is a read-only client for the Oura wellness API, authenticated with
// a process-wide personal access token. Responses are cached for an hour
// because the upstream only syncs a few times a day.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	log     zerolog.Logger
}

type DailySleep struct {
	ID           string `json:"id"`
	Day          string `json:"day"`
	Score        int    `json:"score"`
	Contributors struct {
		DeepSleep   int `json:"deep_sleep"`
		Efficiency  int `json:"efficiency"`
		Latency     int `json:"latency"`
		RemSleep    int `json:"rem_sleep"`
		Restfulness int `json:"restfulness"`
		Timing      int `json:"timing"`
		TotalSleep  int `json:"total_sleep"`
	} `json:"contributors"`
}

type DailyActivity struct {
	ID             string `json:"id"`
	Day            string `json:"day"`
	Score          int    `json:"score"`
	ActiveCalories int    `json:"active_calories"`
	Steps          int    `json:"steps"`
	TotalCalories  int    `json:"total_calories"`
}

type DailyReadiness struct {
	ID           string `json:"id"`
	Day          string `json:"day"`
	Score        int    `json:"score"`
	Contributors struct {
		ActivityBalance   int `json:"activity_balance"`
		BodyTemperature   int `json:"body_temperature"`
		HRVBalance        int `json:"hrv_balance"`
		PreviousDayActive int `json:"previous_day_activity"`
		PreviousNight     int `json:"previous_night"`
		RecoveryIndex     int `json:"recovery_index"`
		RestingHeartRate  int `json:"resting_heart_rate"`
		SleepBalance      int `json:"sleep_balance"`
	} `json:"contributors"`
}

// NewClient builds the client. An empty token disables the integration; the
// client stays usable and every call returns empty data.
func NewClient(token string, c *cache.Cache, log zerolog.Logger) *Client {
	cl := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   c,
		log:     log.With().Str("component", "oura").Logger(),
	}
	if token == "" {
		cl.log.Info().Msg("no Oura access token configured, wellness integration disabled")
	}
	return cl
}

func (c *Client) Enabled() bool {
	return c.token != ""
}

func (c *Client) DailySleep(ctx context.Context, startDate, endDate string) ([]DailySleep, error) {
	var out []DailySleep
	err := c.fetch(ctx, "daily_sleep", startDate, endDate, &out)
	return out, err
}

func (c *Client) DailyActivity(ctx context.Context, startDate, endDate string) ([]DailyActivity, error) {
	var out []DailyActivity
	err := c.fetch(ctx, "daily_activity", startDate, endDate, &out)
	return out, err
}

func (c *Client) DailyReadiness(ctx context.Context, startDate, endDate string) ([]DailyReadiness, error) {
	var out []DailyReadiness
	err := c.fetch(ctx, "daily_readiness", startDate, endDate, &out)
	return out, err
}

// fetch retrieves one collection, going through the cache first. out must be
// a pointer to a slice; the API wraps results in a "data" envelope.
func (c *Client) fetch(ctx context.Context, dataType, startDate, endDate string, out interface{}) error {
	if !c.Enabled() {
		return nil
	}

	key := fmt.Sprintf("oura:%s:%s:%s", dataType, startDate, endDate)
	if body, ok := c.cache.Get(ctx, key); ok {
		return c.decode(body, out)
	}

	url := fmt.Sprintf("%s/%s?start_date=%s&end_date=%s", c.baseURL, dataType, startDate, endDate)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oura api returned %s for %s", resp.Status, dataType)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}

	c.cache.Set(ctx, key, envelope.Data, cacheTTL)
	return c.decode(envelope.Data, out)
}

func (c *Client) decode(data []byte, out interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
