package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/comigor/korea-opendata-go/internal/logger"
	"github.com/comigor/korea-opendata-go/internal/nts"
	"github.com/comigor/korea-opendata-go/internal/validation"
)

// BusinessRegistry is the part of the tax service client the business tools
// need.
type BusinessRegistry interface {
	Status(ctx context.Context, numbers []string) (*nts.StatusResponse, error)
	Validate(ctx context.Context, businesses []nts.BusinessInfo) (*nts.ValidateResponse, error)
}

// BusinessStatusTool looks up whether businesses are open, suspended or closed.
type BusinessStatusTool struct {
	registry  BusinessRegistry
	formatter *nts.Formatter
}

// NewBusinessStatusTool creates a new BusinessStatusTool
func NewBusinessStatusTool(registry BusinessRegistry, formatter *nts.Formatter) *BusinessStatusTool {
	return &BusinessStatusTool{registry: registry, formatter: formatter}
}

func (t *BusinessStatusTool) Name() string {
	return "check_business_status"
}

func (t *BusinessStatusTool) Description() string {
	return "사업자등록번호로 사업자의 영업상태(계속/휴업/폐업)와 과세유형을 조회합니다. 최대 100개까지 한 번에 조회 가능합니다."
}

func (t *BusinessStatusTool) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription(t.Description()),
		mcp.WithTitleAnnotation("사업자 상태 조회"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray("business_numbers",
			mcp.Description("조회할 사업자등록번호 목록 (하이픈 없이 10자리 숫자, 예: ['1234567890']). 최대 100개"),
			mcp.Required(),
			mcp.MinItems(1),
			mcp.MaxItems(nts.MaxBatch),
			mcp.WithStringItems(),
		),
	)
}

func (t *BusinessStatusTool) Run(ctx context.Context, args map[string]any) (string, error) {
	numbers, err := validation.BusinessNumbers(args["business_numbers"])
	if err != nil {
		return "", err
	}
	logger.L.DebugContext(ctx, "checking business status", "count", len(numbers))

	resp, err := t.registry.Status(ctx, numbers)
	if err != nil {
		return "", err
	}
	return t.formatter.StatusReport(resp, len(numbers)), nil
}

// BusinessValidateTool checks submitted registration details against the
// tax service records.
type BusinessValidateTool struct {
	registry  BusinessRegistry
	formatter *nts.Formatter
}

// NewBusinessValidateTool creates a new BusinessValidateTool
func NewBusinessValidateTool(registry BusinessRegistry, formatter *nts.Formatter) *BusinessValidateTool {
	return &BusinessValidateTool{registry: registry, formatter: formatter}
}

func (t *BusinessValidateTool) Name() string {
	return "validate_business_registration"
}

func (t *BusinessValidateTool) Description() string {
	return "사업자등록정보의 진위여부를 확인합니다. 사업자등록번호, 개업일자, 대표자명 등을 입력하여 국세청 정보와 일치하는지 확인합니다."
}

func (t *BusinessValidateTool) Definition() mcp.Tool {
	str := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	return mcp.NewTool(t.Name(),
		mcp.WithDescription(t.Description()),
		mcp.WithTitleAnnotation("사업자등록 진위확인"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithArray("businesses",
			mcp.Description("진위확인할 사업자 정보 목록. 최대 100개"),
			mcp.Required(),
			mcp.MinItems(1),
			mcp.MaxItems(nts.MaxBatch),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"b_no":     str("사업자등록번호 (하이픈 없이 10자리)"),
					"start_dt": str("개업일자 (YYYYMMDD 형식)"),
					"p_nm":     str("대표자명"),
					"p_nm2":    str("대표자명2 (공동대표인 경우)"),
					"b_nm":     str("상호(법인명)"),
					"corp_no":  str("법인등록번호 (하이픈 없이 13자리)"),
					"b_sector": str("주업태"),
					"b_type":   str("주종목"),
				},
				"required": []string{"b_no", "start_dt", "p_nm"},
			}),
		),
	)
}

func (t *BusinessValidateTool) Run(ctx context.Context, args map[string]any) (string, error) {
	businesses, err := validation.BusinessInfos(args["businesses"])
	if err != nil {
		return "", err
	}
	logger.L.DebugContext(ctx, "validating business registrations", "count", len(businesses))

	resp, err := t.registry.Validate(ctx, businesses)
	if err != nil {
		return "", err
	}
	return t.formatter.ValidateReport(resp, len(businesses)), nil
}
