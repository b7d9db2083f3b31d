// Package kasi talks to the special-day information service (SpcdeInfoService)
// that the Korea Astronomy and Space Science Institute publishes on data.go.kr.
package kasi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is one of the special-day classifications offered upstream.
type Category string

const (
	Holidays      Category = "holidays"
	NationalDay   Category = "nationalDay"
	Anniversary   Category = "anniversary"
	DivisionsInfo Category = "divisionsInfo"
	SundryDay     Category = "sundryDay"
)

// AllCategories lists the categories in catalog order.
var AllCategories = []Category{Holidays, NationalDay, Anniversary, DivisionsInfo, SundryDay}

// CategoryInfo maps a category to its endpoint and display label.
type CategoryInfo struct {
	Endpoint string
	Label    string
}

// Categories is a category lookup table.
type Categories map[Category]CategoryInfo

// DefaultCategories returns the production table.
func DefaultCategories() Categories {
	return Categories{
		Holidays:      {Endpoint: "getRestDeInfo", Label: "공휴일"},
		NationalDay:   {Endpoint: "getHoliDeInfo", Label: "국경일"},
		Anniversary:   {Endpoint: "getAnniversaryInfo", Label: "기념일"},
		DivisionsInfo: {Endpoint: "get24DivisionsInfo", Label: "24절기"},
		SundryDay:     {Endpoint: "getSundryDayInfo", Label: "잡절"},
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Envelope is the JSON document returned with _type=json.
type Envelope struct {
	Response *Payload `json:"response"`
}

type Payload struct {
	Header Header `json:"header"`
	Body   Body   `json:"body"`
}

type Header struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

type Body struct {
	TotalCount int      `json:"totalCount"`
	Items      ItemList `json:"items"`
}

// Item is a single special day.
type Item struct {
	DateName  string  `json:"dateName"`
	Locdate   Locdate `json:"locdate"`
	IsHoliday string  `json:"isHoliday,omitempty"`
}

// Locdate is a YYYYMMDD date. Upstream sends a number; a quoted number is
// accepted too.
type Locdate int

func (d *Locdate) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*d = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("locdate: %w", err)
	}
	*d = Locdate(n)
	return nil
}

// ItemList decodes the "items" member, which upstream renders as an empty
// string when there is no data, as {"item": {...}} for one result and as
// {"item": [...]} for several.
type ItemList []Item

func (l *ItemList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == '"' || string(b) == "null" {
		*l = nil
		return nil
	}
	var wrap struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(b, &wrap); err != nil {
		return err
	}
	raw := bytes.TrimSpace(wrap.Item)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		*l = nil
	case raw[0] == '[':
		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
	default:
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		*l = ItemList{item}
	}
	return nil
}

// Outcome is the interpretation of an Envelope: one of NoResponse,
// Rejected, Empty or Found.
type Outcome interface {
	outcome()
}

// NoResponse means the document had no "response" member.
type NoResponse struct{}

// Rejected means upstream answered with a result code other than "00".
type Rejected struct {
	Code    string
	Message string
}

// Empty means the query succeeded without matching days.
type Empty struct{}

// Found carries the days of a successful query.
type Found struct {
	TotalCount int
	Items      []Item
}

func (NoResponse) outcome() {}
func (Rejected) outcome()   {}
func (Empty) outcome()      {}
func (Found) outcome()      {}

const resultCodeOK = "00"

// Outcome classifies the envelope. Found depends on item presence alone;
// TotalCount is reported as sent.
func (e *Envelope) Outcome() Outcome {
	if e == nil || e.Response == nil {
		return NoResponse{}
	}
	h := e.Response.Header
	if h.ResultCode != resultCodeOK {
		return Rejected{Code: h.ResultCode, Message: h.ResultMsg}
	}
	b := e.Response.Body
	if len(b.Items) == 0 {
		return Empty{}
	}
	return Found{TotalCount: b.TotalCount, Items: b.Items}
}
