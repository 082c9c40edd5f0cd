package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/curve"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/interp"
	"github.com/meenmo/curvelib/marketdata"
)

const dateLayout = "2006-01-02"

// quoteFile is the on-disk JSON schema accepted by --input.
type quoteFile struct {
	Name      string `json:"name"`
	CurveDate string `json:"curve_date"`
	Quotes    []struct {
		Pillar string          `json:"pillar"`
		Rate   decimal.Decimal `json:"rate"`
	} `json:"quotes"`
}

func readQuoteFile(path string) (marketdata.QuoteSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return marketdata.QuoteSet{}, fmt.Errorf("read quote file: %w", err)
	}

	var in quoteFile
	if err := json.Unmarshal(data, &in); err != nil {
		return marketdata.QuoteSet{}, fmt.Errorf("parse quote file %s: %w", path, err)
	}

	curveDate, err := time.Parse(dateLayout, in.CurveDate)
	if err != nil {
		return marketdata.QuoteSet{}, fmt.Errorf("parse curve_date in %s: %w", path, err)
	}

	set := marketdata.QuoteSet{Name: in.Name, CurveDate: curveDate}
	for _, q := range in.Quotes {
		set.Quotes = append(set.Quotes, marketdata.Quote{Pillar: q.Pillar, Rate: q.Rate})
	}
	return set, nil
}

// loadQuoteSet resolves quotes from --input when given, otherwise from the
// Postgres store by name and curve date, through Redis when enabled.
func loadQuoteSet(ctx context.Context, input, name, dateStr string) (marketdata.QuoteSet, error) {
	if input != "" {
		return readQuoteFile(input)
	}

	if name == "" || dateStr == "" {
		return marketdata.QuoteSet{}, errors.New("pass --input, or --name together with --curve-date")
	}
	curveDate, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return marketdata.QuoteSet{}, fmt.Errorf("invalid --curve-date value: %w", err)
	}
	if cfg.Database.DSN == "" {
		return marketdata.QuoteSet{}, errors.New("database.dsn is not configured; set CURVETOOL_DATABASE_DSN or pass --input")
	}

	store, err := marketdata.NewStore(ctx, cfg.Database.DSN, logger)
	if err != nil {
		return marketdata.QuoteSet{}, err
	}
	defer store.Close()

	if cfg.Redis.Enabled {
		cache := marketdata.NewRedisQuoteCache(cfg.Redis.Addr, cfg.Redis.TTL)
		return marketdata.LoadQuotesCached(ctx, cache, store, name, curveDate, logger)
	}
	return store.QuotesAsOf(ctx, name, curveDate)
}

// resolveConventions parses the configured construction conventions once.
func resolveConventions() (curve.Frequency, daycount.Convention, interp.Method, calendar.CalendarID, error) {
	freq, err := curve.ParseFrequency(cfg.Curve.Frequency)
	if err != nil {
		return 0, "", 0, "", fmt.Errorf("curve.frequency: %w", err)
	}
	dc := daycount.Convention(cfg.Curve.DayCount)
	if err := dc.Validate(); err != nil {
		return 0, "", 0, "", fmt.Errorf("curve.day_count: %w", err)
	}
	method, err := interp.ParseMethod(cfg.Curve.Interpolation)
	if err != nil {
		return 0, "", 0, "", fmt.Errorf("curve.interpolation: %w", err)
	}
	return freq, dc, method, calendar.CalendarID(cfg.Curve.Calendar), nil
}

// buildConfiguredCurve loads a quote set and builds it under the configured
// conventions.
func buildConfiguredCurve(ctx context.Context, input, name, dateStr string) (*curve.ZeroCurve, marketdata.QuoteSet, error) {
	set, err := loadQuoteSet(ctx, input, name, dateStr)
	if err != nil {
		return nil, marketdata.QuoteSet{}, err
	}

	freq, dc, method, cal, err := resolveConventions()
	if err != nil {
		return nil, marketdata.QuoteSet{}, err
	}

	crv, err := set.BuildCurve(freq, dc, method, cal)
	if err != nil {
		return nil, marketdata.QuoteSet{}, fmt.Errorf("build %s: %w", set.Name, err)
	}

	logger.Debug().
		Str("curve", set.Name).
		Time("curve_date", set.CurveDate).
		Int("pillars", len(set.Quotes)).
		Str("frequency", freq.String()).
		Str("day_count", string(dc)).
		Str("interpolation", method.String()).
		Msg("curve built")

	return crv, set, nil
}
