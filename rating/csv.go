package rating

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rushteam/simkit/core"
)

// CSV 格式：三列 user_id,item_id,rating，首行为表头（跳过不解析）。
// 这是协作方约定的交换格式，核心不感知文件来源。

// LoadCSV 从 r 读取评分并逐条写入 rec，返回成功写入的条数。
// 列数不对或评分非数值时返回 INVALID_INPUT 错误并停止，已写入的评分保留
// （重放整个文件是安全的：Record 幂等）。
func LoadCSV(ctx context.Context, r io.Reader, rec *Recorder) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 列数自己校验，报错时带上行号

	n := 0
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, core.NewDomainError(core.ModuleRating, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rating: csv read: %v", err))
		}
		line++
		if line == 1 {
			continue // 表头
		}
		if len(row) != 3 {
			return n, core.NewDomainError(core.ModuleRating, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rating: csv line %d: want 3 fields, got %d", line, len(row)))
		}
		score, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return n, core.NewDomainError(core.ModuleRating, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rating: csv line %d: bad rating %q", line, row[2]))
		}
		if err := rec.Record(ctx, row[0], row[1], score); err != nil {
			return n, err
		}
		n++
	}
}

// LoadCSVFile 从文件路径读取评分，见 LoadCSV。
func LoadCSVFile(ctx context.Context, path string, rec *Recorder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return LoadCSV(ctx, f, rec)
}
