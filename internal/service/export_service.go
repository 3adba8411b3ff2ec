package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-verify/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

const exportSheetName = "设备访问记录"

var exportHeaders = []string{"设备序列号", "设备型号", "原始序列号", "时间", "员工编号", "员工姓名", "标签", "方式", "结果", "观测序列号", "离线", "按标签归组", "备注"}

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出内容与 GET /history/grouped 一致，每条访问记录一行，按分组顺序排列
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportGroupedHistory 导出分组历史为 Excel
	ExportGroupedHistory(ctx context.Context, limit int) (*bytes.Buffer, string, error)
}

type exportService struct {
	history HistoryService
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(history HistoryService, logger *zap.Logger) ExportService {
	return &exportService{history: history, logger: logger, now: time.Now}
}

func (s *exportService) ExportGroupedHistory(ctx context.Context, limit int) (*bytes.Buffer, string, error) {
	groups, err := s.history.GroupedHistory(ctx, limit)
	if err != nil {
		return nil, "", err
	}

	buf, err := renderHistoryWorkbook(groups)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("device_history_%s.xlsx", s.now().Format("20060102_150405"))
	return buf, filename, nil
}

func renderHistoryWorkbook(groups []dto.DeviceHistory) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(exportSheetName, "A", "C", 20)
	f.SetColWidth(exportSheetName, "D", "D", 24)
	f.SetColWidth(exportSheetName, "E", "M", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		f.SetCellValue(exportSheetName, cell(i+1, 1), h)
	}
	f.SetCellStyle(exportSheetName, cell(1, 1), cell(len(exportHeaders), 1), headerStyle)
	f.SetPanes(exportSheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	row := 2
	for _, g := range groups {
		for _, l := range g.AccessLogs {
			values := []interface{}{
				g.DeviceSerialNorm,
				g.DeviceModel,
				g.DeviceSerialRaw,
				l.CreatedAt,
				l.EmployeeCode,
				l.EmployeeName,
				deref(l.LabelID),
				l.Method,
				l.Result,
				deref(l.ObservedSerialNorm),
				yesNo(l.IsOfflineEvent),
				yesNo(l.Recovered),
				deref(l.Notes),
			}
			for i, v := range values {
				f.SetCellValue(exportSheetName, cell(i+1, row), v)
			}
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
