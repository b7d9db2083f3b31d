// Package validation checks raw tool arguments and turns them into typed,
// normalized values. Every failure is an apperr invalid-parameter error whose
// message names the offending field.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/comigor/korea-opendata-go/internal/apperr"
	"github.com/comigor/korea-opendata-go/internal/kasi"
	"github.com/comigor/korea-opendata-go/internal/nts"
)

const (
	MinYear       = 1900
	MaxYear       = 2100
	MaxMonthCount = 12
)

const (
	msgNoNumbers    = "사업자등록번호를 입력해주세요."
	msgNoBusinesses = "진위확인할 사업자 정보를 입력해주세요."
	msgCategory     = "유효한 특일 종류를 입력해주세요: holidays, nationalDay, anniversary, divisionsInfo, sundryDay"
	msgYear         = "유효한 연도를 입력해주세요 (1900-2100)."
	msgMonth        = "월은 1-12 범위여야 합니다."
	msgMonthCount   = "조회 월 수는 1-12 범위여야 합니다."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration cannot fail for a non-empty tag and a non-nil func.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return kasi.Category(fl.Field().String()).Valid()
	})
	return v
}

// BusinessNumbers validates a list of registration numbers and returns them
// without hyphens, in input order.
func BusinessNumbers(raw any) ([]string, error) {
	items, ok := asSlice(raw)
	if !ok || len(items) == 0 {
		return nil, apperr.InvalidParameter(msgNoNumbers)
	}
	if len(items) > nts.MaxBatch {
		return nil, apperr.InvalidParameter("한 번에 최대 %d개까지만 조회할 수 있습니다.", nts.MaxBatch)
	}

	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, apperr.InvalidParameter("사업자등록번호[%d]: 문자열이어야 합니다.", i)
		}
		clean := stripHyphens(s)
		if err := validate.Var(clean, "len=10,number"); err != nil {
			return nil, apperr.InvalidParameter("사업자등록번호[%d]: 10자리 숫자 형식이어야 합니다. (입력값: %s)", i, s)
		}
		out[i] = clean
	}
	return out, nil
}

// businessFields are the keys BusinessInfo maps to its own fields.
var businessFields = map[string]func(*nts.BusinessInfo, string){
	"b_no":     func(b *nts.BusinessInfo, v string) { b.BNo = stripHyphens(v) },
	"start_dt": func(b *nts.BusinessInfo, v string) { b.StartDt = v },
	"p_nm":     func(b *nts.BusinessInfo, v string) { b.PNm = v },
	"p_nm2":    func(b *nts.BusinessInfo, v string) { b.PNm2 = v },
	"b_nm":     func(b *nts.BusinessInfo, v string) { b.BNm = v },
	"corp_no":  func(b *nts.BusinessInfo, v string) { b.CorpNo = stripHyphens(v) },
	"b_sector": func(b *nts.BusinessInfo, v string) { b.BSector = v },
	"b_type":   func(b *nts.BusinessInfo, v string) { b.BType = v },
}

// BusinessInfos validates the businesses to verify. Keys outside the known
// set are carried through untouched.
func BusinessInfos(raw any) ([]nts.BusinessInfo, error) {
	items, ok := asSlice(raw)
	if !ok || len(items) == 0 {
		return nil, apperr.InvalidParameter(msgNoBusinesses)
	}
	if len(items) > nts.MaxBatch {
		return nil, apperr.InvalidParameter("한 번에 최대 %d개까지만 확인할 수 있습니다.", nts.MaxBatch)
	}

	out := make([]nts.BusinessInfo, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, apperr.InvalidParameter("사업자[%d]: 객체 형식이어야 합니다.", i)
		}

		var info nts.BusinessInfo
		for k, v := range m {
			if set, known := businessFields[k]; known {
				set(&info, toString(v))
				continue
			}
			if info.Extra == nil {
				info.Extra = make(map[string]any)
			}
			info.Extra[k] = v
		}

		if err := validate.Struct(info); err != nil {
			return nil, businessError(i, err)
		}
		out[i] = info
	}
	return out, nil
}

func businessError(i int, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal("validate business", err)
	}
	switch verrs[0].StructField() {
	case "CorpNo":
		return apperr.InvalidParameter("사업자[%d] corp_no: 13자리 숫자 형식이어야 합니다.", i)
	default:
		return apperr.InvalidParameter("사업자[%d] b_no: 10자리 숫자 형식이어야 합니다.", i)
	}
}

// HolidayQuery is a validated get_korean_holidays request.
type HolidayQuery struct {
	Type       kasi.Category `validate:"category"`
	Year       int           `validate:"min=1900,max=2100"`
	Month      *int          `validate:"omitempty,min=1,max=12"`
	MonthCount int           `validate:"min=1,max=12"`
}

// Range returns the first month and the number of months to query. Without a
// month the whole year is queried and MonthCount is ignored.
func (q HolidayQuery) Range() (start, count int) {
	if q.Month == nil {
		return 1, 12
	}
	return *q.Month, q.MonthCount
}

var holidayMessages = map[string]string{
	"Type":       msgCategory,
	"Year":       msgYear,
	"Month":      msgMonth,
	"MonthCount": msgMonthCount,
}

// HolidayParams validates get_korean_holidays arguments. Numbers may arrive
// as JSON numbers or numeric strings. Values that are not whole numbers are
// zeroed so the range rules reject them in field order.
func HolidayParams(args map[string]any) (HolidayQuery, error) {
	t, _ := args["type"].(string)
	year, _ := toInt(args["year"])
	q := HolidayQuery{Type: kasi.Category(t), Year: year, MonthCount: 1}

	if v := args["month"]; v != nil {
		month, _ := toInt(v)
		q.Month = &month
	}
	if v := args["monthCount"]; v != nil {
		q.MonthCount, _ = toInt(v)
	}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := holidayMessages[verrs[0].StructField()]; ok {
				return HolidayQuery{}, apperr.InvalidParameter("%s", msg)
			}
		}
		return HolidayQuery{}, apperr.Internal("validate holiday params", err)
	}
	return q, nil
}

func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func stripHyphens(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt accepts only whole numbers that fit comfortably in an int.
func toInt(v any) (int, bool) {
	f, ok := toNumber(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
