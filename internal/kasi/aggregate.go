package kasi

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/comigor/korea-opendata-go/internal/apperr"
	"github.com/comigor/korea-opendata-go/internal/logger"
)

// Fetcher is the part of Client used by the Aggregator.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, year, month int) (*Envelope, error)
}

// YearMonth is a calendar month.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%d년 %d월", ym.Year, ym.Month)
}

// MonthsFrom returns count consecutive months starting at year/start,
// rolling over into following years.
func MonthsFrom(year, start, count int) []YearMonth {
	months := make([]YearMonth, 0, count)
	for i := 0; i < count; i++ {
		m, y := start+i, year
		for m > 12 {
			m -= 12
			y++
		}
		months = append(months, YearMonth{Year: y, Month: m})
	}
	return months
}

// Aggregator queries a range of months one after another and merges the
// results into one report.
type Aggregator struct {
	fetcher    Fetcher
	categories Categories
}

// NewAggregator creates an Aggregator over the given category table.
func NewAggregator(f Fetcher, categories Categories) *Aggregator {
	return &Aggregator{fetcher: f, categories: categories}
}

// HolidaysForMonths fetches monthCount months starting at year/startMonth.
// A failing month is reported in the text and does not stop the others;
// only configuration errors and cancellation abort the whole call.
func (a *Aggregator) HolidaysForMonths(ctx context.Context, cat Category, year, startMonth, monthCount int) (string, error) {
	info, ok := a.categories[cat]
	if !ok {
		return "", apperr.InvalidParameter("알 수 없는 특일 종류입니다: %s", cat)
	}

	var (
		items  []Item
		failed []string
	)
	for _, ym := range MonthsFrom(year, startMonth, monthCount) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		env, err := a.fetcher.Fetch(ctx, info.Endpoint, ym.Year, ym.Month)
		if err != nil {
			if apperr.Is(err, apperr.KindConfiguration) {
				return "", err
			}
			logger.L.Error("kasi month query failed", "category", cat, "month", ym.String(), "error", err)
			failed = append(failed, ym.String()+": 조회에 실패했습니다.")
			continue
		}
		switch o := env.Outcome().(type) {
		case Found:
			items = append(items, o.Items...)
		case Rejected:
			logger.L.Warn("kasi rejected month query", "category", cat, "month", ym.String(), "code", o.Code, "message", o.Message)
		case Empty, NoResponse:
		}
	}

	return formatMerged(info.Label, items, failed), nil
}

func formatMerged(label string, items []Item, failed []string) string {
	if len(items) == 0 && len(failed) > 0 {
		return "조회 중 오류 발생:\n" + strings.Join(failed, "\n")
	}
	if len(items) == 0 {
		return noDataMessage(label)
	}

	slices.SortStableFunc(items, func(x, y Item) int {
		return cmp.Compare(x.Locdate, y.Locdate)
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s 조회 결과\n", label)
	fmt.Fprintf(&sb, "총 %d건\n", len(items))
	writeItems(&sb, items)
	if len(failed) > 0 {
		sb.WriteString("\n\n일부 조회 실패:\n")
		sb.WriteString(strings.Join(failed, "\n"))
	}
	return sb.String()
}
