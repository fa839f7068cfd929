// Package geo resolves postcodes to coordinates and estimates annual
// photovoltaic yield per roof face via external services. Every operation in
// this package is allowed to fail: callers treat errors as "no override
// available" and fall back to the flat irradiance estimate.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"solarquote_backend/platform/apperr"
	"solarquote_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// Fixed PVGIS assumptions for a domestic rooftop installation.
const (
	systemLossPercent = 14.0
	defaultTiltDeg    = 35.0
)

// LatLon is a resolved coordinate pair.
type LatLon struct {
	Lat float64
	Lon float64
}

// Client talks to the postcode-coordinate service (postcodes.io) and the
// photovoltaic-yield estimator (PVGIS).
type Client struct {
	client       *http.Client
	postcodesURL string
	pvgisURL     string
	log          *logger.Logger
	lookups      singleflight.Group
}

// NewClient creates a geo client against the given service base URLs.
func NewClient(postcodesURL, pvgisURL string, log *logger.Logger) *Client {
	return &Client{
		client:       &http.Client{Timeout: 10 * time.Second},
		postcodesURL: postcodesURL,
		pvgisURL:     pvgisURL,
		log:          log,
	}
}

type postcodesResponse struct {
	Status int `json:"status"`
	Result struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"result"`
}

// ResolveLatLon resolves a normalized postcode to coordinates. Concurrent
// lookups for the same postcode are collapsed into one upstream call.
func (c *Client) ResolveLatLon(ctx context.Context, postcode string) (LatLon, error) {
	result, err, _ := c.lookups.Do(postcode, func() (interface{}, error) {
		return c.resolveLatLon(ctx, postcode)
	})
	if err != nil {
		return LatLon{}, err
	}
	return result.(LatLon), nil
}

func (c *Client) resolveLatLon(ctx context.Context, postcode string) (LatLon, error) {
	reqURL := fmt.Sprintf("%s/postcodes/%s", c.postcodesURL, url.PathEscape(postcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return LatLon{}, apperr.Wrap(apperr.KindUnavailable, "postcode lookup request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return LatLon{}, apperr.Wrap(apperr.KindUnavailable, "postcode lookup failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return LatLon{}, apperr.Unavailable(fmt.Sprintf("postcode lookup status %d", resp.StatusCode))
	}

	var payload postcodesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return LatLon{}, apperr.Wrap(apperr.KindUnavailable, "postcode lookup payload", err)
	}

	lat, lon := payload.Result.Latitude, payload.Result.Longitude
	if lat == nil || lon == nil || !isFinite(*lat) || !isFinite(*lon) {
		return LatLon{}, apperr.Unavailable("postcode lookup returned no coordinates")
	}

	return LatLon{Lat: *lat, Lon: *lon}, nil
}

type pvgisResponse struct {
	Outputs struct {
		Totals struct {
			Fixed struct {
				AnnualEnergyKWh *float64 `json:"E_y"`
			} `json:"fixed"`
		} `json:"totals"`
	} `json:"outputs"`
}

// AnnualYieldForFace estimates the annual kWh for one roof face at the given
// coordinates, tilt and azimuth. Faces with no installed capacity yield zero
// without an upstream call.
func (c *Client) AnnualYieldForFace(ctx context.Context, loc LatLon, tiltDeg, azimuthDeg, peakPowerKwp float64) (float64, error) {
	if peakPowerKwp <= 0 {
		return 0, nil
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", loc.Lat))
	params.Set("lon", fmt.Sprintf("%.4f", loc.Lon))
	params.Set("peakpower", fmt.Sprintf("%.3f", peakPowerKwp))
	params.Set("loss", fmt.Sprintf("%.1f", systemLossPercent))
	params.Set("angle", fmt.Sprintf("%.1f", tiltDeg))
	params.Set("aspect", fmt.Sprintf("%.1f", azimuthDeg))
	params.Set("usehorizon", "1")
	params.Set("outputformat", "json")

	reqURL := fmt.Sprintf("%s/PVcalc?%s", c.pvgisURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "irradiance request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "irradiance lookup failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, apperr.Unavailable(fmt.Sprintf("irradiance lookup status %d", resp.StatusCode))
	}

	var payload pvgisResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "irradiance payload", err)
	}

	annual := payload.Outputs.Totals.Fixed.AnnualEnergyKWh
	if annual == nil || !isFinite(*annual) {
		return 0, apperr.Unavailable("irradiance response missing annual energy")
	}

	return *annual, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
