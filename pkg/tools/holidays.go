package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/comigor/korea-opendata-go/internal/kasi"
	"github.com/comigor/korea-opendata-go/internal/logger"
	"github.com/comigor/korea-opendata-go/internal/validation"
)

// HolidayAggregator merges special days over a range of months.
type HolidayAggregator interface {
	HolidaysForMonths(ctx context.Context, cat kasi.Category, year, startMonth, monthCount int) (string, error)
}

// HolidaysTool lists Korean public holidays and other special days.
type HolidaysTool struct {
	aggregator HolidayAggregator
}

// NewHolidaysTool creates a new HolidaysTool
func NewHolidaysTool(aggregator HolidayAggregator) *HolidaysTool {
	return &HolidaysTool{aggregator: aggregator}
}

func (t *HolidaysTool) Name() string {
	return "get_korean_holidays"
}

func (t *HolidaysTool) Description() string {
	return "한국의 공휴일, 국경일, 기념일, 24절기, 잡절 정보를 조회합니다. 특정 연도와 월의 특일 정보를 가져올 수 있습니다."
}

func (t *HolidaysTool) Definition() mcp.Tool {
	categories := make([]string, len(kasi.AllCategories))
	for i, c := range kasi.AllCategories {
		categories[i] = string(c)
	}
	return mcp.NewTool(t.Name(),
		mcp.WithDescription(t.Description()),
		mcp.WithTitleAnnotation("한국 특일 조회"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("type",
			mcp.Description("조회할 특일 종류: holidays(공휴일), nationalDay(국경일), anniversary(기념일), divisionsInfo(24절기), sundryDay(잡절)"),
			mcp.Required(),
			mcp.Enum(categories...),
		),
		mcp.WithNumber("year",
			mcp.Description("조회할 연도 (예: 2025)"),
			mcp.Required(),
			mcp.Min(validation.MinYear),
			mcp.Max(validation.MaxYear),
		),
		mcp.WithNumber("month",
			mcp.Description("조회할 시작 월 (1-12). 생략하면 해당 연도 전체를 조회합니다."),
			mcp.Min(1),
			mcp.Max(12),
		),
		mcp.WithNumber("monthCount",
			mcp.Description("조회할 월 수 (기본값: 1). month가 지정된 경우에만 유효합니다."),
			mcp.Min(1),
			mcp.Max(validation.MaxMonthCount),
			mcp.DefaultNumber(1),
		),
	)
}

func (t *HolidaysTool) Run(ctx context.Context, args map[string]any) (string, error) {
	q, err := validation.HolidayParams(args)
	if err != nil {
		return "", err
	}
	start, count := q.Range()
	logger.L.DebugContext(ctx, "querying special days", "type", q.Type, "year", q.Year, "start", start, "count", count)

	return t.aggregator.HolidaysForMonths(ctx, q.Type, q.Year, start, count)
}
