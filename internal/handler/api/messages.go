package api

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Message keys for user-facing errors.
const (
	msgInvalidSymbol = "invalid_symbol"
	msgNotFound      = "not_found"
	msgSuperseded    = "superseded"
	msgRateLimited   = "rate_limited"
	msgNoView        = "no_view"
	msgInternal      = "internal"
)

var catalog = map[string]map[string]string{
	"en": {
		msgInvalidSymbol: "Please enter a stock symbol",
		msgNotFound:      "Could not load data. Please try again or check the stock symbol",
		msgSuperseded:    "A newer search replaced this one",
		msgRateLimited:   "Too many searches, please slow down",
		msgNoView:        "Nothing has been loaded in this session yet",
		msgInternal:      "Something went wrong",
	},
	"th": {
		msgInvalidSymbol: "กรุณาใส่สัญลักษณ์หุ้น",
		msgNotFound:      "ดึงข้อมูลไม่สำเร็จ กรุณาลองใหม่ หรือตรวจสอบสัญลักษณ์หุ้น",
		msgSuperseded:    "มีการค้นหาใหม่แทนที่คำขอนี้แล้ว",
		msgRateLimited:   "ค้นหาถี่เกินไป กรุณารอสักครู่",
		msgNoView:        "ยังไม่มีข้อมูลที่โหลดในเซสชันนี้",
		msgInternal:      "เกิดข้อผิดพลาด กรุณาลองใหม่",
	},
}

// localizer picks the message language: ?lang= first, then
// Accept-Language, then the configured default.
type localizer struct {
	fallback string
}

func (l localizer) locale(c echo.Context) string {
	if lang := normalizeLang(c.QueryParam("lang")); lang != "" {
		return lang
	}
	for _, part := range strings.Split(c.Request().Header.Get("Accept-Language"), ",") {
		if lang := normalizeLang(part); lang != "" {
			return lang
		}
	}
	return l.fallback
}

func (l localizer) text(c echo.Context, key string) string {
	return message(l.locale(c), key)
}

func message(lang, key string) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	return catalog["en"][key]
}

func normalizeLang(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_;"); i >= 0 {
		s = s[:i]
	}
	if _, ok := catalog[s]; ok {
		return s
	}
	return ""
}
