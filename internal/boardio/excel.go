package boardio

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/colorsort/watersort"
)

const (
	borderScanLimit = 255
	blackHex        = "000000"
	whiteHex        = "FFFFFF"
)

// ReadSpreadsheet reads the first sheet of an xlsx workbook and decodes it
// into a fully-known-or-hidden Game: a black border row and column (scanned
// from A1, at most borderScanLimit cells in each direction) delimits the
// board; white cells are EMPTY unless a colored cell precedes them higher
// up the same column, in which case they are UNKNOWN; every other color is
// KNOWN. This replaces driving a live Excel COM instance with reading a
// portable workbook file, the only change from the original adapter
// boundary.
func ReadSpreadsheet(path string, mode watersort.Mode, undoCount int) (*watersort.Game, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(watersort.ErrAdapterFailure, err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.Wrap(watersort.ErrAdapterFailure, "workbook has no sheets")
	}

	rows, cols, err := identifyRange(f, sheet)
	if err != nil {
		return nil, err
	}

	tubes := make([]watersort.Tube, cols)
	for col := 0; col < cols; col++ {
		tube := make(watersort.Tube, 0, rows)
		seenKnown := false
		for row := 0; row < rows; row++ {
			hex, err := cellColorHex(f, sheet, col+1, row+1)
			if err != nil {
				return nil, errors.Wrap(watersort.ErrAdapterFailure, err.Error())
			}
			pos := watersort.Pos{Col: col, Row: row}
			if hex == whiteHex || hex == "" {
				if seenKnown {
					tube = append(tube, watersort.NewUnknownNode(pos))
				} else {
					tube = append(tube, watersort.NewEmptyNode(pos))
				}
				continue
			}
			seenKnown = true
			c, err := watersort.ColorFromHex(hex)
			if err != nil {
				return nil, errors.Wrap(watersort.ErrAdapterFailure, err.Error())
			}
			tube = append(tube, watersort.NewKnownNode(pos, c))
		}
		reverseTube(tube)
		tubes[col] = tube
	}

	return watersort.NewGame(tubes, rows, mode, undoCount)
}

func reverseTube(t watersort.Tube) {
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		t[i], t[j] = t[j], t[i]
	}
}

// identifyRange scans column A downward and row 1 rightward for the black
// border cell that bounds the data region, the way excel_identifier.py's
// identify_range locates the rectangle before reading it.
func identifyRange(f *excelize.File, sheet string) (rows, cols int, err error) {
	rows, err = scanBorder(f, sheet, func(i int) (int, int) { return 1, i })
	if err != nil {
		return 0, 0, err
	}
	cols, err = scanBorder(f, sheet, func(i int) (int, int) { return i, 1 })
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// scanBorder walks cells produced by next(1), next(2), ... (1-based col,row
// pairs) until it finds a black cell, returning the 0-based count of cells
// scanned before it.
func scanBorder(f *excelize.File, sheet string, next func(i int) (col, row int)) (int, error) {
	for i := 1; i <= borderScanLimit; i++ {
		col, row := next(i)
		hex, err := cellColorHex(f, sheet, col, row)
		if err != nil {
			return 0, errors.Wrap(watersort.ErrAdapterFailure, err.Error())
		}
		if hex == blackHex {
			return i - 1, nil
		}
	}
	return 0, errors.Wrap(watersort.ErrAdapterFailure, "sheet border not found within scan bound")
}

// cellColorHex returns the uppercase 6-hex-digit fill color of the cell at
// (col, row) (1-based), or "" if it has no fill.
func cellColorHex(f *excelize.File, sheet string, col, row int) (string, error) {
	cellRef, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	styleID, err := f.GetCellStyle(sheet, cellRef)
	if err != nil {
		return "", err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return "", err
	}
	if style.Fill.Color == nil || len(style.Fill.Color) == 0 {
		return "", nil
	}
	hex := strings.TrimPrefix(strings.ToUpper(style.Fill.Color[0]), "#")
	if len(hex) == 8 {
		// excelize fill colors carry an AARRGGBB alpha prefix; drop it.
		hex = hex[2:]
	}
	return hex, nil
}
