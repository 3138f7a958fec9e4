package analytics

import "time"

// MatrixCell 是目标 × 日期矩阵中的一格。Recorded 为 false 表示当天没有记录。
type MatrixCell struct {
	Date      string `json:"date"`
	Recorded  bool   `json:"recorded"`
	Completed bool   `json:"completed"`
}

// MatrixRow 是单个目标在各日期上的完成情况。
type MatrixRow struct {
	Goal  string       `json:"goal"`
	Label string       `json:"label"`
	Cells []MatrixCell `json:"cells"`
}

// Matrix 是目标 × 日期矩阵，Dates 升序并以 today 结尾。
type Matrix struct {
	Dates []string    `json:"dates"`
	Rows  []MatrixRow `json:"rows"`
}

// BuildMatrix 展示 min(自第一条记录以来的天数, days) 个日历日。
func BuildMatrix(records []Record, days int, today time.Time) Matrix {
	matrix := Matrix{Dates: []string{}, Rows: []MatrixRow{}}
	if len(records) == 0 || days <= 0 {
		return matrix
	}

	byDate := make(map[string]Record, len(records))
	first := DateOf(records[0].Date)
	for _, record := range records {
		day := DateOf(record.Date)
		byDate[day.Format(DateLayout)] = record
		if day.Before(first) {
			first = day
		}
	}

	end := DateOf(today)
	sinceFirst := int(end.Sub(first).Hours()/24) + 1
	count := min(sinceFirst, days)
	if count <= 0 {
		return matrix
	}

	for i := count - 1; i >= 0; i-- {
		matrix.Dates = append(matrix.Dates, end.AddDate(0, 0, -i).Format(DateLayout))
	}

	for _, goal := range goals {
		row := MatrixRow{Goal: goal.Key, Label: goal.Label, Cells: make([]MatrixCell, 0, len(matrix.Dates))}
		for _, date := range matrix.Dates {
			record, ok := byDate[date]
			row.Cells = append(row.Cells, MatrixCell{
				Date:      date,
				Recorded:  ok,
				Completed: ok && goal.Completed(record),
			})
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	return matrix
}
