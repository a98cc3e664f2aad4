package sheet

import "errors"

// Mode 编辑状态机：read-only -> editable -> saving -> read-only，
// 保存失败退回 editable
type Mode string

const (
	ModeReadOnly Mode = "read-only"
	ModeEditable Mode = "editable"
	ModeSaving   Mode = "saving"
)

var (
	ErrNotEditable     = errors.New("sheet is not in editable mode")
	ErrCapacityReached = errors.New("sheet already holds 40 populated rows")
	ErrNoEmptyRows     = errors.New("no empty trailing rows available to reclaim")
	ErrIndexOutOfRange = errors.New("group index out of range")
	ErrSaveInProgress  = errors.New("a save is already in progress")
)

// Grid 持有编辑会话中的考勤表及其状态。字段导出以便整体序列化进草稿缓存。
type Grid struct {
	Mode Mode           `json:"mode"`
	Data AttendanceData `json:"data"`
}

// NewGrid 初始为只读，nil 数据退化为空白默认表
func NewGrid(data AttendanceData) *Grid {
	if data == nil {
		data = DefaultData()
	}
	return &Grid{Mode: ModeReadOnly, Data: data}
}

// EnableEditing 只读转为可编辑，幂等；保存中不允许切换
func (g *Grid) EnableEditing() {
	if g.Mode == ModeReadOnly {
		g.Mode = ModeEditable
	}
}

// UpdateCell 替换指定行的单个字段。写时复制：产出全新结构，旧数据保持不变。
// 非编辑态返回 ErrNotEditable；下标越界或未知字段名定义为无操作（源实现未定义，这里收敛为安全行为）。
func (g *Grid) UpdateCell(groupIdx, rowIdx int, field, value string) error {
	if g.Mode != ModeEditable {
		return ErrNotEditable
	}

	if groupIdx < 0 || groupIdx >= len(g.Data) {
		return nil
	}
	if rowIdx < 0 || rowIdx >= len(g.Data[groupIdx]) {
		return nil
	}

	row := g.Data[groupIdx][rowIdx]
	if !setField(&row, field, value) {
		return nil
	}

	next := g.Data.Clone()
	next[groupIdx][rowIdx] = row
	g.Data = next
	return nil
}

// AddRowToGroup 在指定分组末尾追加一个空行，并从整表末尾回收一个空白单行分组，
// 保持总行数恒为 40。返回变更前的快照供限时撤销使用。
// 回收的始终是最末尾的分组，与插入位置无关（沿用既有语义，见 DESIGN.md）。
func (g *Grid) AddRowToGroup(groupIdx int) (AttendanceData, error) {
	if g.Mode != ModeEditable {
		return nil, ErrNotEditable
	}

	// 末尾分组即将被回收，不能作为插入目标
	if groupIdx < 0 || groupIdx >= len(g.Data)-1 {
		return nil, ErrIndexOutOfRange
	}

	if g.Data.NonEmptyRows() >= MaxRows {
		return nil, ErrCapacityReached
	}

	if g.trailingEmptyGroups() == 0 {
		return nil, ErrNoEmptyRows
	}

	snapshot := g.Data.Clone()

	next := g.Data.Clone()
	next[groupIdx] = append(next[groupIdx], AttendanceRow{})
	next = next[:len(next)-1]
	g.Data = next

	return snapshot, nil
}

// Restore 恢复到某个快照，撤销入口。仅在可编辑状态下有效。
func (g *Grid) Restore(snapshot AttendanceData) error {
	if g.Mode != ModeEditable {
		return ErrNotEditable
	}
	g.Data = snapshot.Clone()
	return nil
}

// BeginSave editable -> saving；重复保存被拒绝（重入保护）
func (g *Grid) BeginSave() error {
	switch g.Mode {
	case ModeSaving:
		return ErrSaveInProgress
	case ModeEditable:
		g.Mode = ModeSaving
		return nil
	default:
		return ErrNotEditable
	}
}

// FinishSave 保存成功回到只读，失败退回可编辑由调用方上报错误
func (g *Grid) FinishSave(success bool) {
	if g.Mode != ModeSaving {
		return
	}
	if success {
		g.Mode = ModeReadOnly
	} else {
		g.Mode = ModeEditable
	}
}

// trailingEmptyGroups 从末尾向前数，连续的"单行且该行为空"的分组个数
func (g *Grid) trailingEmptyGroups() int {
	count := 0
	for i := len(g.Data) - 1; i >= 0; i-- {
		grp := g.Data[i]
		if len(grp) == 1 && grp[0].IsEmpty() {
			count++
			continue
		}
		break
	}
	return count
}

func setField(r *AttendanceRow, field, value string) bool {
	switch field {
	case "date":
		r.Date = value
	case "day":
		r.Day = value
	case "sched":
		r.Sched = value
	case "timeIn":
		r.TimeIn = value
	case "timeOut":
		r.TimeOut = value
	case "destination":
		r.Destination = value
	case "remarks":
		r.Remarks = value
	case "signature":
		r.Signature = value
	default:
		return false
	}
	return true
}
