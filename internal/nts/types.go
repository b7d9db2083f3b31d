// Package nts talks to the National Tax Service business registration
// service (nts-businessman v1) published on odcloud.kr.
package nts

import (
	"encoding/json"
	"maps"
)

// MaxBatch is the largest number of businesses upstream accepts per request.
const MaxBatch = 100

// StatusItem is the state of one registration number.
type StatusItem struct {
	BNo             string `json:"b_no"`
	BStt            string `json:"b_stt"`
	BSttCd          string `json:"b_stt_cd"`
	TaxType         string `json:"tax_type"`
	TaxTypeCd       string `json:"tax_type_cd"`
	EndDt           string `json:"end_dt"`
	UtccYn          string `json:"utcc_yn"`
	TaxTypeChangeDt string `json:"tax_type_change_dt"`
	InvoiceApplyDt  string `json:"invoice_apply_dt"`
}

// StatusResponse is the reply of the status endpoint.
type StatusResponse struct {
	StatusCode string       `json:"status_code"`
	RequestCnt int          `json:"request_cnt"`
	MatchCnt   int          `json:"match_cnt"`
	Data       []StatusItem `json:"data"`
}

// BusinessInfo is one business to verify. Fields upstream does not define are
// kept in Extra and sent back as they came.
type BusinessInfo struct {
	BNo     string `json:"b_no" validate:"len=10,number"`
	StartDt string `json:"start_dt"`
	PNm     string `json:"p_nm"`
	PNm2    string `json:"p_nm2,omitempty"`
	BNm     string `json:"b_nm,omitempty"`
	CorpNo  string `json:"corp_no,omitempty" validate:"omitempty,len=13,number"`
	BSector string `json:"b_sector,omitempty"`
	BType   string `json:"b_type,omitempty"`

	Extra map[string]any `json:"-" validate:"-"`
}

// MarshalJSON merges Extra with the known fields; known fields win.
func (b BusinessInfo) MarshalJSON() ([]byte, error) {
	type plain BusinessInfo
	known, err := json.Marshal(plain(b))
	if err != nil {
		return nil, err
	}
	if len(b.Extra) == 0 {
		return known, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	merged := maps.Clone(b.Extra)
	maps.Copy(merged, fields)
	return json.Marshal(merged)
}

// RequestParam echoes the submitted values in a validation reply.
type RequestParam struct {
	BNo     string `json:"b_no"`
	StartDt string `json:"start_dt"`
	PNm     string `json:"p_nm"`
	BNm     string `json:"b_nm"`
}

// ValidateItem is the verdict for one submitted business.
type ValidateItem struct {
	BNo          string        `json:"b_no"`
	Valid        string        `json:"valid"`
	ValidMsg     string        `json:"valid_msg"`
	RequestParam *RequestParam `json:"request_param"`
	Status       *StatusItem   `json:"status"`
}

// ValidateResponse is the reply of the validate endpoint.
type ValidateResponse struct {
	StatusCode string         `json:"status_code"`
	RequestCnt int            `json:"request_cnt"`
	ValidCnt   int            `json:"valid_cnt"`
	Data       []ValidateItem `json:"data"`
}

// validMatch is the "valid" code for a registration that matches the records.
const validMatch = "01"

// Labels resolves status and tax-type codes to display names.
type Labels struct {
	Status  map[string]string
	TaxType map[string]string
}

// DefaultLabels returns the code tables published by the tax service.
func DefaultLabels() Labels {
	return Labels{
		Status: map[string]string{
			"01": "계속사업자",
			"02": "휴업자",
			"03": "폐업자",
		},
		TaxType: map[string]string{
			"01": "부가가치세 일반과세자",
			"02": "부가가치세 간이과세자",
			"03": "부가가치세 과세특례자",
			"04": "부가가치세 면세사업자",
			"05": "수익사업을 영위하지 않는 비영리법인이거나 고유번호가 부여된 단체",
			"06": "고유번호가 부여된 단체",
			"07": "부가가치세 간이과세자(세금계산서 발급사업자)",
			"99": "해당없음",
		},
	}
}
