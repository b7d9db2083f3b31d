package kasi

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatResponse renders a single upstream response under the given category
// label.
func FormatResponse(env *Envelope, label string) string {
	switch o := env.Outcome().(type) {
	case NoResponse:
		return "응답 데이터가 없습니다."
	case Rejected:
		msg := o.Message
		if msg == "" {
			msg = "알 수 없는 오류"
		}
		return "API 오류: " + msg
	case Empty:
		return noDataMessage(label)
	case Found:
		if o.TotalCount == 0 {
			return noDataMessage(label)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "총 %d건\n", o.TotalCount)
		writeItems(&sb, o.Items)
		return sb.String()
	default:
		panic(fmt.Sprintf("kasi: unhandled outcome %T", o))
	}
}

func noDataMessage(label string) string {
	return fmt.Sprintf("해당 기간에 %s 정보가 없습니다.", label)
}

func writeItems(sb *strings.Builder, items []Item) {
	for i, item := range items {
		fmt.Fprintf(sb, "\n[%d] %s", i+1, item.DateName)
		fmt.Fprintf(sb, "\n    날짜: %s", FormatDate(strconv.Itoa(int(item.Locdate))))
		if item.IsHoliday != "" {
			fmt.Fprintf(sb, "\n    공휴일 여부: %s", yesNo(item.IsHoliday))
		}
	}
}

// FormatDate turns YYYYMMDD into YYYY-MM-DD. Anything that is not exactly
// eight characters long is returned unchanged.
func FormatDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
}

func yesNo(flag string) string {
	if flag == "Y" {
		return "예"
	}
	return "아니오"
}
