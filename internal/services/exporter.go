package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"skillmap/portfolio-api/internal/models"
)

// ExporterService renders stored rubric data as xlsx workbooks.
type ExporterService interface {
	ExportRubric(rubric *models.RubricScore) ([]byte, error)
	ExportSkillMaps(maps []models.SkillMap) ([]byte, error)
}

type exporterService struct{}

func NewExporterService() ExporterService {
	return &exporterService{}
}

// ExportRubric lays the rubric out as a grid: one row per skill, one column
// per level, criteria descriptions in the cells.
func (e *exporterService) ExportRubric(rubric *models.RubricScore) ([]byte, error) {
	headers := []string{"SKILL"}
	levelCol := make(map[uint]int, len(rubric.Levels))
	for i, level := range rubric.Levels {
		name := level.Name
		if name == "" {
			name = fmt.Sprintf("LEVEL %d", level.Rank)
		}
		headers = append(headers, name)
		levelCol[level.ID] = i + 2
	}

	rows := make([][]any, 0, len(rubric.Skills))
	for _, skill := range rubric.Skills {
		row := make([]any, len(headers))
		name := skill.Name
		if name == "" {
			name = fmt.Sprintf("Skill %d", skill.DisplayOrder)
		}
		row[0] = name
		for _, c := range skill.Criteria {
			if col, ok := levelCol[c.LevelID]; ok {
				row[col-1] = c.Description
			}
		}
		rows = append(rows, row)
	}

	return writeWorkbook(sheetName(rubric.Name), headers, rows)
}

func (e *exporterService) ExportSkillMaps(maps []models.SkillMap) ([]byte, error) {
	headers := []string{"ID", "CATEGORY", "SKILLS", "DESCRIPTION", "DATE"}

	rows := make([][]any, 0, len(maps))
	for _, m := range maps {
		rows = append(rows, []any{m.ID, m.Category, strings.Join(m.Skills, ", "), m.Description, m.Date})
	}

	return writeWorkbook("Skill Maps", headers, rows)
}

func writeWorkbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, colName, colName, 28)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName fits a rubric name into Excel's sheet name rules.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Rubric"
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
