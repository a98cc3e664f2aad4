package sheet

import "strings"

// RawLogEntry 提取服务返回的原始日志条目，一天一条，字段名与外部接口保持一致
type RawLogEntry struct {
	Date     string `json:"Date"` // YYYY-MM-DD
	Day      string `json:"Day"`
	Shift    string `json:"Shift"`
	TimeIn   string `json:"TimeIn"`
	BreakOut string `json:"BreakOut"`
	BreakIn  string `json:"BreakIn"`
	TimeOut  string `json:"TimeOut"`
	Remarks  string `json:"Remarks"`
}

const (
	dayOffShift    = "X"
	dayOffRemarks  = "DAY OFF"
	defaultDest    = "OFFICE"
	defaultRemarks = "DUTY ON CALL"
)

// HasTimeRecords 四个打卡字段任意一个非空白即视为有打卡记录。
// 标注了休息日但仍有打卡的按工作日处理。
func HasTimeRecords(e RawLogEntry) bool {
	return strings.TrimSpace(e.TimeIn) != "" ||
		strings.TrimSpace(e.TimeOut) != "" ||
		strings.TrimSpace(e.BreakOut) != "" ||
		strings.TrimSpace(e.BreakIn) != ""
}

func isDayOff(e RawLogEntry) bool {
	return e.Shift == dayOffShift || e.Remarks == dayOffRemarks
}

// ProcessLogs 把原始日志转换为分组后的考勤表：
// 休息日（且无打卡）产出单行分组，其余产出上下午两行分组，
// 末尾补空白单行分组直到总行数等于 40。
// 输入本身超过 40 行时不补行也不截断，容量在编辑时而非加载时强制。
func ProcessLogs(entries []RawLogEntry) AttendanceData {
	data := make(AttendanceData, 0, len(entries))

	for _, e := range entries {
		if isDayOff(e) && !HasTimeRecords(e) {
			data = append(data, AttendanceGroup{{
				Date:    reformatDate(e.Date),
				Day:     e.Day,
				Sched:   e.Shift,
				Remarks: e.Remarks,
			}})
			continue
		}

		remarks := e.Remarks
		if remarks == "" {
			remarks = defaultRemarks
		}

		data = append(data, AttendanceGroup{
			{
				Date:        reformatDate(e.Date),
				Day:         e.Day,
				Sched:       e.Shift,
				TimeIn:      to12Hour(e.TimeIn),
				TimeOut:     to12Hour(e.BreakOut),
				Destination: defaultDest,
				Remarks:     remarks,
			},
			{
				TimeIn:      to12Hour(e.BreakIn),
				TimeOut:     to12Hour(e.TimeOut),
				Destination: defaultDest,
				Remarks:     remarks,
			},
		})
	}

	for data.TotalRows() < MaxRows {
		data = append(data, AttendanceGroup{{}})
	}

	return data
}

// to12Hour 24 小时制 "H:MM"/"HH:MM" 转 12 小时制 "h:MM"，不带 am/pm，
// 分钟部分原样保留。空输入返回空，无法解析的输入原样返回。
func to12Hour(t string) string {
	if t == "" {
		return ""
	}

	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}

	hour := 0
	for _, c := range parts[0] {
		if c < '0' || c > '9' {
			return t
		}
		hour = hour*10 + int(c-'0')
	}

	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	digits := ""
	if hour >= 10 {
		digits = string(rune('0'+hour/10)) + string(rune('0'+hour%10))
	} else {
		digits = string(rune('0' + hour))
	}

	return digits + ":" + parts[1]
}

// reformatDate YYYY-MM-DD 重排为 MM-DD-YYYY，空输入返回空
func reformatDate(d string) string {
	if d == "" {
		return ""
	}

	parts := strings.Split(d, "-")
	if len(parts) != 3 {
		return d
	}

	return parts[1] + "-" + parts[2] + "-" + parts[0]
}
