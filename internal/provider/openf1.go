package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sebasr/f1-telemetry-viewer/internal/config"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/repository"
)

// maxResponseSize bounds a single API response (a full race of location data is a few MB)
const maxResponseSize = 64 << 20

// OpenF1Client implements SessionProvider on top of the OpenF1 REST API
type OpenF1Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      repository.CacheRepository
	cacheTTL     time.Duration
	discoveryTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewOpenF1Client creates a client. cache may be nil to disable response caching.
// Listings that grow during a season (sessions, meetings, drivers) expire after
// cacheCfg.DiscoveryTTL, everything else after cacheCfg.TTL.
func NewOpenF1Client(cfg config.ProviderConfig, cache repository.CacheRepository, cacheCfg config.CacheConfig, logger *zap.Logger) *OpenF1Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenF1Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:      cache,
		cacheTTL:     cacheCfg.TTL,
		discoveryTTL: cacheCfg.DiscoveryTTL,
		logger:     logger.Named("openf1"),
		now:        time.Now,
	}
}

// GetSession implements SessionProvider.GetSession
func (c *OpenF1Client) GetSession(ctx context.Context, year int, race string, sessionType models.SessionType) (*Session, error) {
	params := url.Values{
		"year":         {strconv.Itoa(year)},
		"session_name": {sessionType.Name()},
	}

	var sessions []openF1Session
	if err := c.getJSON(ctx, "/sessions", params, &sessions); err != nil {
		return nil, err
	}

	candidates := lo.Filter(sessions, func(s openF1Session, _ int) bool {
		return s.matches(race, strings.EqualFold)
	})
	if len(candidates) == 0 && len(sessions) > 0 {
		// fall back to event names such as "Italian Grand Prix"
		meetings, err := c.meetings(ctx, year)
		if err != nil {
			return nil, err
		}
		candidates = lo.Filter(sessions, func(s openF1Session, _ int) bool {
			m, ok := meetings[s.MeetingKey]
			return ok && m.matches(race, strings.EqualFold)
		})
		if len(candidates) == 0 {
			candidates = lo.Filter(sessions, func(s openF1Session, _ int) bool {
				m, ok := meetings[s.MeetingKey]
				return s.matches(race, containsFold) || (ok && m.matches(race, containsFold))
			})
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d %s %s", ErrSessionNotFound, year, race, sessionType.Name())
	}

	chosen := lo.MinBy(candidates, func(a, b openF1Session) bool {
		return a.DateStart.Before(b.DateStart.Time)
	})

	return &Session{
		Key:              chosen.SessionKey,
		MeetingKey:       chosen.MeetingKey,
		Year:             chosen.Year,
		Name:             chosen.SessionName,
		Type:             sessionType,
		Location:         chosen.Location,
		CountryName:      chosen.CountryName,
		CircuitShortName: chosen.CircuitShortName,
		Start:            chosen.DateStart.Time,
	}, nil
}

// GetLaps implements SessionProvider.GetLaps
func (c *OpenF1Client) GetLaps(ctx context.Context, session *Session, driverCode string) ([]Lap, error) {
	driver, err := c.driver(ctx, session, driverCode)
	if err != nil {
		return nil, err
	}

	var raw []openF1Lap
	if err := c.getJSON(ctx, "/laps", driverParams(session, driver), &raw); err != nil {
		return nil, err
	}

	laps := lo.Map(raw, func(l openF1Lap, _ int) Lap {
		lap := Lap{Number: l.LapNumber, Start: l.DateStart.Time, PitOut: l.IsPitOutLap}
		if l.LapDuration != nil {
			lap.Duration = time.Duration(*l.LapDuration * float64(time.Second))
		}
		return lap
	})
	sort.SliceStable(laps, func(i, j int) bool { return laps[i].Number < laps[j].Number })

	return laps, nil
}

// GetTelemetry implements SessionProvider.GetTelemetry
func (c *OpenF1Client) GetTelemetry(ctx context.Context, session *Session, driverCode string, laps []Lap) ([]RawSample, error) {
	driver, err := c.driver(ctx, session, driverCode)
	if err != nil {
		return nil, err
	}
	params := driverParams(session, driver)

	var locations []openF1Location
	if err := c.getJSON(ctx, "/location", params, &locations); err != nil {
		return nil, err
	}
	var carData []openF1CarData
	if err := c.getJSON(ctx, "/car_data", params, &carData); err != nil {
		return nil, err
	}

	sort.SliceStable(locations, func(i, j int) bool { return locations[i].Date.Before(locations[j].Date.Time) })
	sort.SliceStable(carData, func(i, j int) bool { return carData[i].Date.Before(carData[j].Date.Time) })

	from, to := lapWindow(laps)
	samples := make([]RawSample, 0, len(locations))
	j := 0
	for _, loc := range locations {
		if !from.IsZero() && loc.Date.Before(from) {
			continue
		}
		if !to.IsZero() && loc.Date.After(to) {
			break
		}
		// advance to the car sample closest in time
		for j+1 < len(carData) && !carData[j+1].Date.After(loc.Date.Time) {
			j++
		}
		closest := j
		if j+1 < len(carData) && carData[j+1].Date.Sub(loc.Date.Time) < loc.Date.Sub(carData[j].Date.Time) {
			closest = j + 1
		}
		sample := RawSample{Date: loc.Date.Time, X: loc.X, Y: loc.Y, Z: loc.Z}
		if len(carData) > 0 {
			sample.Speed = carData[closest].Speed
		}
		samples = append(samples, sample)
	}

	c.logger.Debug("telemetry merged",
		zap.Int("session", session.Key),
		zap.String("driver", driverCode),
		zap.Int("locations", len(locations)),
		zap.Int("carData", len(carData)),
		zap.Int("samples", len(samples)))

	return samples, nil
}

// GetResult implements SessionProvider.GetResult
func (c *OpenF1Client) GetResult(ctx context.Context, session *Session, driverCode string) (*Result, error) {
	driver, err := c.driver(ctx, session, driverCode)
	if err != nil {
		return nil, err
	}
	params := driverParams(session, driver)

	var results []openF1Result
	if err := c.getJSON(ctx, "/session_result", params, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s in session %d", ErrNoResult, driverCode, session.Key)
	}

	var grid []openF1Grid
	if err := c.getJSON(ctx, "/starting_grid", params, &grid); err != nil {
		return nil, err
	}

	res := results[0]
	out := &Result{
		FullName: driver.FullName,
		Team:     driver.TeamName,
	}
	if res.Position != nil {
		out.Position = *res.Position
	}
	if res.Points != nil {
		out.Points = *res.Points
	}
	if len(grid) > 0 && grid[0].Position != nil {
		out.GridPosition = *grid[0].Position
	}
	return out, nil
}

// meetings returns the season's race weekends keyed by meeting key
func (c *OpenF1Client) meetings(ctx context.Context, year int) (map[int]openF1Meeting, error) {
	var list []openF1Meeting
	if err := c.getJSON(ctx, "/meetings", url.Values{"year": {strconv.Itoa(year)}}, &list); err != nil {
		return nil, err
	}
	return lo.KeyBy(list, func(m openF1Meeting) int { return m.MeetingKey }), nil
}

// driver looks up a driver of the session by three-letter code
func (c *OpenF1Client) driver(ctx context.Context, session *Session, code string) (*openF1Driver, error) {
	var drivers []openF1Driver
	params := url.Values{"session_key": {strconv.Itoa(session.Key)}}
	if err := c.getJSON(ctx, "/drivers", params, &drivers); err != nil {
		return nil, err
	}

	d, ok := lo.Find(drivers, func(d openF1Driver) bool {
		return strings.EqualFold(d.NameAcronym, code)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s in session %d", ErrDriverNotInSession, code, session.Key)
	}
	return &d, nil
}

// getJSON fetches endpoint with params, going through the response cache
func (c *OpenF1Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint + "?" + params.Encode()

	ttl, cacheable := c.ttlFor(endpoint)

	if cacheable {
		if body, ok := c.cached(ctx, u, ttl); ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
			c.logger.Warn("discarding undecodable cache entry", zap.String("url", u))
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrUnavailable, endpoint, err)
	}

	c.logger.Debug("provider request",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", c.now().Sub(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// OpenF1 answers 404 when a filter matches nothing
		body = []byte("[]")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s returned status %d", ErrUnavailable, endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, endpoint, err)
	}

	if resp.StatusCode == http.StatusOK && cacheable {
		c.store(ctx, u, body)
	}
	return nil
}

// discoveryEndpoints list what OpenF1 keeps adding to while a season runs
var discoveryEndpoints = map[string]bool{
	"/sessions": true,
	"/meetings": true,
	"/drivers":  true,
}

// ttlFor returns how long responses of endpoint stay fresh and whether they are cached at all
func (c *OpenF1Client) ttlFor(endpoint string) (time.Duration, bool) {
	if !discoveryEndpoints[endpoint] {
		return c.cacheTTL, true
	}
	if c.discoveryTTL <= 0 {
		return 0, false
	}
	if c.cacheTTL > 0 && c.cacheTTL < c.discoveryTTL {
		return c.cacheTTL, true
	}
	return c.discoveryTTL, true
}

func (c *OpenF1Client) cached(ctx context.Context, key string, ttl time.Duration) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			c.logger.Warn("cache lookup failed", zap.String("url", key), zap.Error(err))
		}
		return nil, false
	}
	if entry.Expired(ttl, c.now()) {
		return nil, false
	}
	return entry.Body, true
}

func (c *OpenF1Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, key, body); err != nil {
		c.logger.Warn("cache store failed", zap.String("url", key), zap.Error(err))
	}
}

func driverParams(session *Session, driver *openF1Driver) url.Values {
	return url.Values{
		"session_key":   {strconv.Itoa(session.Key)},
		"driver_number": {strconv.Itoa(driver.DriverNumber)},
	}
}

// lapWindow returns the time span covered by laps. Zero bounds are open.
func lapWindow(laps []Lap) (time.Time, time.Time) {
	var from, to time.Time
	for _, lap := range laps {
		if lap.Start.IsZero() {
			continue
		}
		if from.IsZero() || lap.Start.Before(from) {
			from = lap.Start
		}
	}
	if len(laps) > 0 {
		last := laps[len(laps)-1]
		if !last.Start.IsZero() && last.HasTime() {
			to = last.Start.Add(last.Duration)
		}
	}
	return from, to
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
