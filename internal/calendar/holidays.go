package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	defaultNagerBaseURL = "https://date.nager.at"
	defaultHTTPTimeout  = 10 * time.Second
)

// Holiday is a public holiday with its local name
type Holiday struct {
	Date time.Time
	Name string
}

// HolidaySource provides the public holidays of a whole year
type HolidaySource interface {
	PublicHolidays(ctx context.Context, year int) ([]Holiday, error)
}

// NagerSource implements HolidaySource using the date.nager.at API
type NagerSource struct {
	baseURL    string
	country    string
	httpClient *http.Client
	logger     *zap.Logger
}

// nagerHoliday represents one entry of the PublicHolidays response
type nagerHoliday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// NewNagerSource creates a new NagerSource for the given two-letter country code
func NewNagerSource(baseURL, country string, timeout time.Duration, logger *zap.Logger) *NagerSource {
	if baseURL == "" {
		baseURL = defaultNagerBaseURL
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &NagerSource{
		baseURL: baseURL,
		country: country,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Country returns the configured country code
func (s *NagerSource) Country() string {
	return s.country
}

// PublicHolidays fetches all holidays of the year for the configured country
func (s *NagerSource) PublicHolidays(ctx context.Context, year int) ([]Holiday, error) {
	// Build URL: https://date.nager.at/api/v3/PublicHolidays/2024/FR
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", s.baseURL, year, s.country)

	s.logger.Debug("Fetching public holidays",
		zap.String("url", url),
		zap.Int("year", year),
		zap.String("country", s.country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var entries []nagerHoliday
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	holidays := make([]Holiday, 0, len(entries))
	for _, entry := range entries {
		date, err := dateutil.ParseDate(entry.Date)
		if err != nil {
			s.logger.Warn("Skipping holiday with unparsable date",
				zap.String("date", entry.Date),
				zap.String("name", entry.LocalName))
			continue
		}
		holidays = append(holidays, Holiday{Date: date, Name: entry.LocalName})
	}

	s.logger.Info("Public holidays fetched",
		zap.Int("year", year),
		zap.String("country", s.country),
		zap.Int("count", len(holidays)))

	return holidays, nil
}
