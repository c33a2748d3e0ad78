package vegetation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cutoffs holds the inclusive classification boundaries for one index:
// mean >= Good is good, mean >= Moderate is moderate, anything below is poor.
type Cutoffs struct {
	Good     float64
	Moderate float64
}

// CropThresholds is one threshold table entry.
type CropThresholds struct {
	NDVI Cutoffs
	NDMI Cutoffs
	NDRE Cutoffs
}

// DefaultCrop keys the fallback entry used for unknown or empty crop types.
const DefaultCrop = "default"

// ThresholdTable maps crop types to their index cutoffs.
type ThresholdTable struct {
	crops map[string]CropThresholds
}

func defaultThresholds() CropThresholds {
	return CropThresholds{
		NDVI: Cutoffs{Good: 0.60, Moderate: 0.40},
		NDMI: Cutoffs{Good: 0.30, Moderate: 0.15},
		NDRE: Cutoffs{Good: 0.20, Moderate: 0.10},
	}
}

// DefaultTable returns the built-in table carrying only the default entry.
func DefaultTable() *ThresholdTable {
	return &ThresholdTable{crops: map[string]CropThresholds{DefaultCrop: defaultThresholds()}}
}

// For resolves the entry for a crop type, falling back to the default entry
// when the crop is unknown or empty.
func (t *ThresholdTable) For(crop string) CropThresholds {
	if c, ok := t.crops[normalizeCrop(crop)]; ok {
		return c
	}
	return t.crops[DefaultCrop]
}

// Crops lists the configured crop types.
func (t *ThresholdTable) Crops() []string {
	out := make([]string, 0, len(t.crops))
	for k := range t.crops {
		out = append(out, k)
	}
	return out
}

func normalizeCrop(crop string) string {
	return strings.ToLower(strings.TrimSpace(crop))
}

// LoadFromFiles builds a table from an optional CSV and an optional XLSX
// workbook on top of the built-in defaults. Either path may be empty.
// Rows carry crop, index, good, moderate.
func LoadFromFiles(csvPath, xlsxPath string) (*ThresholdTable, error) {
	t := DefaultTable()
	if csvPath != "" {
		if err := t.loadCSV(csvPath); err != nil {
			return nil, err
		}
	}
	if xlsxPath != "" {
		if err := t.loadXLSX(xlsxPath); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *ThresholdTable) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop", "croptype")
	cIndex := findAny("index", "vegetationindex")
	cGood := findAny("good", "goodcutoff", "good_threshold")
	cMod := findAny("moderate", "moderatecutoff", "moderate_threshold")
	if cCrop == -1 || cIndex == -1 || cGood == -1 || cMod == -1 {
		return fmt.Errorf("threshold CSV missing required columns, found headers: %v", head)
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		good, err1 := strconv.ParseFloat(get(cGood), 64)
		mod, err2 := strconv.ParseFloat(get(cMod), 64)
		if err1 != nil || err2 != nil {
			continue // skip invalid rows
		}
		t.setCutoffs(get(cCrop), get(cIndex), Cutoffs{Good: good, Moderate: mod})
	}
	return nil
}

func (t *ThresholdTable) loadXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue // header or short row
		}
		good, err1 := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		mod, err2 := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		t.setCutoffs(row[0], row[1], Cutoffs{Good: good, Moderate: mod})
	}
	return nil
}

func (t *ThresholdTable) setCutoffs(crop, index string, c Cutoffs) {
	key := normalizeCrop(crop)
	if key == "" {
		key = DefaultCrop
	}
	entry, ok := t.crops[key]
	if !ok {
		entry = defaultThresholds()
	}
	switch strings.ToUpper(strings.TrimSpace(index)) {
	case "NDVI":
		entry.NDVI = c
	case "NDMI":
		entry.NDMI = c
	case "NDRE":
		entry.NDRE = c
	default:
		return
	}
	t.crops[key] = entry
}
