package sheet

// MaxRows 考勤表固定容量：所有分组的行数总和恒为 40
const MaxRows = 40

// AttendanceRow 考勤表中的一个时段行，所有字段均为纯文本
type AttendanceRow struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	Sched       string `json:"sched"`
	TimeIn      string `json:"timeIn"`
	TimeOut     string `json:"timeOut"`
	Destination string `json:"destination"`
	Remarks     string `json:"remarks"`
	Signature   string `json:"signature"`
}

// IsEmpty 八个字段全部为空串时该行视为空行
func (r AttendanceRow) IsEmpty() bool {
	return r.Date == "" &&
		r.Day == "" &&
		r.Sched == "" &&
		r.TimeIn == "" &&
		r.TimeOut == "" &&
		r.Destination == "" &&
		r.Remarks == "" &&
		r.Signature == ""
}

// AttendanceGroup 一个自然日对应的行分组：休息日一行，工作日两行
type AttendanceGroup []AttendanceRow

// AttendanceData 整张考勤表，按日期顺序排列的分组序列
type AttendanceData []AttendanceGroup

// TotalRows 所有分组的行数总和
func (d AttendanceData) TotalRows() int {
	total := 0
	for _, g := range d {
		total += len(g)
	}
	return total
}

// NonEmptyRows 非空行数，用于容量校验
func (d AttendanceData) NonEmptyRows() int {
	count := 0
	for _, g := range d {
		for _, r := range g {
			if !r.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Clone 深拷贝，编辑操作采用写时复制，旧状态必须保持可用（撤销依赖这一点）
func (d AttendanceData) Clone() AttendanceData {
	if d == nil {
		return nil
	}
	out := make(AttendanceData, len(d))
	for i, g := range d {
		rows := make(AttendanceGroup, len(g))
		copy(rows, g)
		out[i] = rows
	}
	return out
}

// DefaultData 无历史记录时的空白表：40 个单空行分组
func DefaultData() AttendanceData {
	data := make(AttendanceData, 0, MaxRows)
	for i := 0; i < MaxRows; i++ {
		data = append(data, AttendanceGroup{{}})
	}
	return data
}
