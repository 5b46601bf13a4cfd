package zodiac

// 生肖循环，下标 0 对应 year%12==0（猴）
var chineseCycle = [12]string{
	"Monkey", "Rooster", "Dog", "Pig", "Rat", "Ox",
	"Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat",
}

// ChineseCycle：返回生肖循环副本
func ChineseCycle() []string {
	out := make([]string, len(chineseCycle))
	copy(out, chineseCycle[:])
	return out
}

// Chinese：按公历年份取生肖；负数年份先归一化为非负下标
func Chinese(year int) string {
	return chineseCycle[((year%12)+12)%12]
}
