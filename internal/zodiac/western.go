// 包 zodiac：星座与生肖的纯计算逻辑，不依赖 HTTP 与存储
package zodiac

// MonthDay：不含年份的月日
type MonthDay struct {
	Month int
	Day   int
}

// before：按 (月, 日) 字典序比较
func (a MonthDay) before(b MonthDay) bool {
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// Range：星座日期区间，首尾均包含
type Range struct {
	Sign  string
	Start MonthDay
	End   MonthDay
}

// contains：Start <= md <= End
func (r Range) contains(md MonthDay) bool {
	return !md.before(r.Start) && !r.End.before(md)
}

// DefaultWestern：所有区间均未命中时的结果
const DefaultWestern = "Capricorn"

// 约束：摩羯座跨年，首行起点晚于终点永远不会命中；末行仅作展示，扫描时跳过。
// 1/1–1/19 与 12/22–12/31 均落到 DefaultWestern。
var westernTable = [...]Range{
	{"Capricorn", MonthDay{12, 22}, MonthDay{1, 19}},
	{"Aquarius", MonthDay{1, 20}, MonthDay{2, 18}},
	{"Pisces", MonthDay{2, 19}, MonthDay{3, 20}},
	{"Aries", MonthDay{3, 21}, MonthDay{4, 19}},
	{"Taurus", MonthDay{4, 20}, MonthDay{5, 20}},
	{"Gemini", MonthDay{5, 21}, MonthDay{6, 20}},
	{"Cancer", MonthDay{6, 21}, MonthDay{7, 22}},
	{"Leo", MonthDay{7, 23}, MonthDay{8, 22}},
	{"Virgo", MonthDay{8, 23}, MonthDay{9, 22}},
	{"Libra", MonthDay{9, 23}, MonthDay{10, 22}},
	{"Scorpio", MonthDay{10, 23}, MonthDay{11, 21}},
	{"Sagittarius", MonthDay{11, 22}, MonthDay{12, 21}},
	{"Capricorn", MonthDay{12, 22}, MonthDay{12, 31}},
}

// WesternTable：返回星座表副本
func WesternTable() []Range {
	out := make([]Range, len(westernTable))
	copy(out, westernTable[:])
	return out
}

// Western：按月日查找西方星座
// 约束：不校验月日合法性，越界输入按扫描结果返回（通常为 DefaultWestern）
func Western(month, day int) string {
	md := MonthDay{Month: month, Day: day}
	for _, r := range westernTable[:len(westernTable)-1] {
		if r.contains(md) {
			return r.Sign
		}
	}
	return DefaultWestern
}
