// Package geocoding выполняет обратное геокодирование координат отчётов.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"golang.org/x/time/rate"
)

const (
	unknownStreet = "Jalan tidak dikenal"
	defaultCity   = "Jakarta"
)

// NominatimClient - обратное геокодирование через OpenStreetMap Nominatim.
// Публичный Nominatim допускает не больше одного запроса в секунду.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	metrics    *observability.Metrics
}

// NewNominatimClient создаёт клиент Nominatim
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, m *observability.Metrics) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		metrics: m,
	}
}

// ReverseGeocode возвращает адрес точки или nil, если Nominatim его не знает.
// Ожидание лимитера и сам запрос укладываются в общий таймаут клиента.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Address, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("rate_limited").Inc()
		return nil, fmt.Errorf("nominatim rate limit: %w", err)
	}

	params := url.Values{
		"format":         {"json"},
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lng, 'f', -1, 64)},
		"zoom":           {"18"},
		"addressdetails": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var nr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if nr.Address == nil {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return nil, nil
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return nr.toAddress(lat, lng), nil
}

// Nominatim API response types.

type reverseResponse struct {
	DisplayName string          `json:"display_name"`
	Address     *addressDetails `json:"address"`
}

type addressDetails struct {
	Road          string `json:"road"`
	Pedestrian    string `json:"pedestrian"`
	Footway       string `json:"footway"`
	Path          string `json:"path"`
	Residential   string `json:"residential"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Quarter       string `json:"quarter"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
}

func (r reverseResponse) toAddress(lat, lng float64) *models.Address {
	a := r.Address
	full := r.DisplayName
	if full == "" {
		full = fmt.Sprintf("%.4f, %.4f", lat, lng)
	}
	return &models.Address{
		StreetName:  firstNonEmpty(a.Road, a.Pedestrian, a.Footway, a.Path, a.Residential, a.Suburb, a.Neighbourhood, unknownStreet),
		FullAddress: full,
		City:        firstNonEmpty(a.City, a.Town, a.Village, defaultCity),
		District:    firstNonEmpty(a.Suburb, a.Neighbourhood, a.Quarter),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
