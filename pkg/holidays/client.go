package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://date.nager.at/api/v3"

// Holiday - праздник в ответе API
type Holiday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// DisplayName - местное название, если есть
func (h Holiday) DisplayName() string {
	if strings.TrimSpace(h.LocalName) != "" {
		return h.LocalName
	}
	return h.Name
}

// StatusError - API ответил не 200
type StatusError struct {
	Year       int
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("holiday api returned status %d for year %d", e.StatusCode, e.Year)
}

// Client получает государственные праздники по HTTP:
// GET {base}/PublicHolidays/{year}/{country}
type Client struct {
	baseURL    string
	country    string
	httpClient *http.Client
}

func NewClient(baseURL, country string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if country == "" {
		country = "RU"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		country:    strings.ToUpper(country),
		httpClient: httpClient,
	}
}

// List возвращает праздники за год в порядке ответа API
func (c *Client) List(ctx context.Context, year int) ([]Holiday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Year: year, StatusCode: resp.StatusCode}
	}

	var days []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	return days, nil
}

// Holidays возвращает праздники за год: дата (2006-01-02) -> название.
// Записи с некорректной датой или датой другого года пропускаются.
func (c *Client) Holidays(ctx context.Context, year int) (map[string]string, error) {
	days, err := c.List(ctx, year)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(days))
	for _, d := range days {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil || date.Year() != year {
			continue
		}
		if _, exists := result[d.Date]; exists {
			continue
		}
		result[d.Date] = d.DisplayName()
	}

	return result, nil
}
