package nts

import (
	"fmt"
	"strings"
)

const msgNoResults = "조회 결과가 없습니다."

// Formatter renders upstream replies as text.
type Formatter struct {
	labels Labels
}

// NewFormatter creates a Formatter backed by labels.
func NewFormatter(labels Labels) *Formatter {
	return &Formatter{labels: labels}
}

// Status renders one block per registration number.
func (f *Formatter) Status(items []StatusItem) string {
	if len(items) == 0 {
		return msgNoResults
	}
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n[%d] 사업자등록번호: %s", i+1, item.BNo)
		fmt.Fprintf(&sb, "\n    사업자상태: %s (코드: %s)", lookup(f.labels.Status, item.BSttCd, item.BStt), item.BSttCd)
		fmt.Fprintf(&sb, "\n    과세유형: %s", lookup(f.labels.TaxType, item.TaxTypeCd, item.TaxType))
		if item.EndDt != "" {
			fmt.Fprintf(&sb, "\n    폐업일자: %s", item.EndDt)
		}
		if item.UtccYn != "" {
			fmt.Fprintf(&sb, "\n    단위과세전환여부: %s", yesNo(item.UtccYn))
		}
		if item.TaxTypeChangeDt != "" {
			fmt.Fprintf(&sb, "\n    과세유형전환일자: %s", item.TaxTypeChangeDt)
		}
		if item.InvoiceApplyDt != "" {
			fmt.Fprintf(&sb, "\n    세금계산서적용일자: %s", item.InvoiceApplyDt)
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n")
}

// Validate renders one verdict block per submitted business.
func (f *Formatter) Validate(items []ValidateItem) string {
	if len(items) == 0 {
		return msgNoResults
	}
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n[%d] 사업자등록번호: %s", i+1, item.BNo)
		verdict := "불일치"
		if item.Valid == validMatch {
			verdict = "일치"
		}
		fmt.Fprintf(&sb, "\n    진위확인결과: %s", verdict)
		if item.ValidMsg != "" {
			fmt.Fprintf(&sb, "\n    상세메시지: %s", item.ValidMsg)
		}
		if p := item.RequestParam; p != nil {
			sb.WriteString("\n    --- 요청 정보 ---")
			if p.BNm != "" {
				fmt.Fprintf(&sb, "\n    상호: %s", p.BNm)
			}
			if p.PNm != "" {
				fmt.Fprintf(&sb, "\n    대표자명: %s", p.PNm)
			}
			if p.StartDt != "" {
				fmt.Fprintf(&sb, "\n    개업일자: %s", p.StartDt)
			}
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n")
}

// StatusReport renders a status reply under a summary header. requested is
// shown when upstream leaves request_cnt out.
func (f *Formatter) StatusReport(resp *StatusResponse, requested int) string {
	var sb strings.Builder
	sb.WriteString("## 사업자등록 상태조회 결과\n")
	fmt.Fprintf(&sb, "요청 건수: %d건\n", orDefault(resp.RequestCnt, requested))
	fmt.Fprintf(&sb, "조회 성공: %d건\n", resp.MatchCnt)
	sb.WriteString(f.Status(resp.Data))
	return sb.String()
}

// ValidateReport renders a validation reply under a summary header.
func (f *Formatter) ValidateReport(resp *ValidateResponse, requested int) string {
	var sb strings.Builder
	sb.WriteString("## 사업자등록정보 진위확인 결과\n")
	fmt.Fprintf(&sb, "요청 건수: %d건\n", orDefault(resp.RequestCnt, requested))
	fmt.Fprintf(&sb, "확인 완료: %d건\n", resp.ValidCnt)
	sb.WriteString(f.Validate(resp.Data))
	return sb.String()
}

func orDefault(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}

// lookup prefers the label table, then upstream's own text.
func lookup(table map[string]string, code, fallback string) string {
	if name, ok := table[code]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return "알 수 없음"
}

func yesNo(flag string) string {
	if flag == "Y" {
		return "예"
	}
	return "아니오"
}
