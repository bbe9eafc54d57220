package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// DefaultCacheTTL is how long a position snapshot is reused.
	DefaultCacheTTL = 5 * time.Minute

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second

	// motionStep separates the two samples used to detect retrograde motion.
	motionStep = time.Hour
)

// HorizonsProvider queries JPL Horizons for apparent ecliptic longitudes.
type HorizonsProvider struct {
	client   *http.Client
	baseURL  string
	timeout  time.Duration
	cacheTTL time.Duration
	bodies   []BodyInfo
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[time.Time]*cachedSnapshot
}

// cachedSnapshot stores one fetched set of positions.
type cachedSnapshot struct {
	positions []chart.Position
	observer  astro.Observer
	fetchedAt time.Time
}

// HorizonsOption configures a HorizonsProvider.
type HorizonsOption func(*HorizonsProvider)

// WithBaseURL points the provider at a different Horizons endpoint.
func WithBaseURL(u string) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.client = client
	}
}

// WithCacheTTL sets how long fetched snapshots are reused. Zero disables caching.
func WithCacheTTL(d time.Duration) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.cacheTTL = d
	}
}

// WithBodies restricts the bodies queried.
func WithBodies(bodies []BodyInfo) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.bodies = bodies
	}
}

// WithLogger sets the provider logger.
func WithLogger(logger *zap.Logger) HorizonsOption {
	return func(p *HorizonsProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider(opts ...HorizonsOption) *HorizonsProvider {
	p := &HorizonsProvider{
		baseURL:  HorizonsAPIURL,
		timeout:  RequestTimeout,
		cacheTTL: DefaultCacheTTL,
		bodies:   Bodies,
		logger:   zap.NewNop(),
		cache:    make(map[time.Time]*cachedSnapshot),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: p.timeout}
	}
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Available implements Provider.
func (p *HorizonsProvider) Available(body string) bool {
	info, ok := LookupBody(body)
	if !ok {
		return false
	}
	for _, b := range p.bodies {
		if b.NAIFID == info.NAIFID {
			return true
		}
	}
	return false
}

// Positions implements Provider. Snapshots are cached per minute and
// observer for the configured TTL.
func (p *HorizonsProvider) Positions(ctx context.Context, t time.Time, obs astro.Observer) ([]chart.Position, error) {
	key := t.UTC().Truncate(time.Minute)

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()

	if ok && time.Since(cached.fetchedAt) < p.cacheTTL && observerMatch(cached.observer, obs) {
		return clonePositions(cached.positions), nil
	}

	positions := make([]chart.Position, 0, len(p.bodies))
	for _, body := range p.bodies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pos, err := p.queryBody(ctx, body, key, obs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", body.Name, err)
		}
		positions = append(positions, pos)
	}

	p.logger.Debug("Horizons positions fetched",
		zap.Time("at", key),
		zap.Int("bodies", len(positions)))

	if p.cacheTTL > 0 {
		p.mu.Lock()
		p.pruneLocked()
		p.cache[key] = &cachedSnapshot{
			positions: clonePositions(positions),
			observer:  obs,
			fetchedAt: time.Now(),
		}
		p.mu.Unlock()
	}

	return positions, nil
}

func (p *HorizonsProvider) pruneLocked() {
	for k, c := range p.cache {
		if time.Since(c.fetchedAt) >= p.cacheTTL {
			delete(p.cache, k)
		}
	}
}

// queryBody fetches two samples for one body and derives its placement.
func (p *HorizonsProvider) queryBody(ctx context.Context, body BodyInfo, t time.Time, obs astro.Observer) (chart.Position, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", body.NAIFID))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'coord@399'")
	params.Set("COORD_TYPE", "GEODETIC")
	params.Set("SITE_COORD", fmt.Sprintf("'%.4f,%.4f,0'", obs.LonDeg, obs.LatDeg))
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(motionStep))))
	params.Set("STEP_SIZE", "'1 h'")
	params.Set("QUANTITIES", "'31'") // 31=Observer ecliptic lon/lat

	reqURL := p.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return chart.Position{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return chart.Position{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return chart.Position{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return chart.Position{}, fmt.Errorf("failed to read response: %w", err)
	}

	samples, err := parseHorizonsResponse(raw)
	if err != nil {
		return chart.Position{}, err
	}

	pos := chart.NewPosition(body.Name, samples[0].lon)
	if len(samples) > 1 {
		pos.Retrograde = astro.SignedDelta(samples[0].lon, samples[1].lon) < 0
	}
	return pos, nil
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// eclipticSample is one row of an observer ecliptic table.
type eclipticSample struct {
	t   time.Time
	lon float64
	lat float64
}

// parseHorizonsResponse parses the Horizons JSON envelope and its table.
func parseHorizonsResponse(body []byte) ([]eclipticSample, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons error: %s", strings.TrimSpace(resp.Error))
	}

	samples, err := parseEclipticTable(resp.Result)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	return samples, nil
}

// parseEclipticTable extracts samples between the $$SOE and $$EOE markers.
func parseEclipticTable(result string) ([]eclipticSample, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers")
	}

	var samples []eclipticSample
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s, err := parseEclipticLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// parseEclipticLine parses a single QUANTITIES='31' data line:
// 2024-Jan-01 00:00 *m  280.1234567  -0.0001234
// Fields: date, time, optional flags, ecliptic longitude, latitude.
func parseEclipticLine(line string) (eclipticSample, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return eclipticSample{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	t, err := parseHorizonsDateTime(fields[0] + " " + fields[1])
	if err != nil {
		return eclipticSample{}, err
	}

	var vals []float64
	for _, f := range fields[2:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue // flag column such as *, C, m, Nm
		}
		vals = append(vals, v)
		if len(vals) == 2 {
			break
		}
	}
	if len(vals) < 2 {
		return eclipticSample{}, fmt.Errorf("could not find ecliptic lon/lat values")
	}

	return eclipticSample{t: t, lon: astro.NormalizeDegrees(vals[0]), lat: vals[1]}, nil
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-Jan-02 15:04", "2006-Jan-02 15:04:05", "2006-Jan-02 15:04:05.000"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// observerMatch checks if two observers are close enough to share cache.
func observerMatch(a, b astro.Observer) bool {
	const tolerance = 0.1 // degrees
	return abs(a.LatDeg-b.LatDeg) <= tolerance && abs(a.LonDeg-b.LonDeg) <= tolerance
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clonePositions(in []chart.Position) []chart.Position {
	out := make([]chart.Position, len(in))
	copy(out, in)
	return out
}
