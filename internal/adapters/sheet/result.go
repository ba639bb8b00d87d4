package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/smurfwatch/internal/domain/types"
)

// ResultFileName is the suggested download name of a CSV result.
const ResultFileName = "smurf_check_result.csv"

const actsSeparator = " | "

// Columns returns the result header. Per-act columns follow the order in which
// act names first appear across rows.
func Columns(rows []types.RowResult, acts int) []string {
	cols := []string{
		"riot_id_raw", "nick", "tag", "riot_id", "acts_detected",
		"current_tier", "current_rank",
		peakColumn(acts, "tier"), peakColumn(acts, "rank"),
	}

	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, a := range r.PerAct {
			if _, ok := seen[a.Act]; ok {
				continue
			}
			seen[a.Act] = struct{}{}
			cols = append(cols, actColumn(a.Act, "tier"), actColumn(a.Act, "rank"))
		}
	}
	return append(cols, "suspicious_smurf", "reason", "error")
}

// Record renders r against cols. Cells the row has no value for are empty.
func Record(r types.RowResult, cols []string, acts int) []string {
	cells := map[string]string{
		"riot_id_raw": r.RiotIDRaw,
		"nick":        r.Nick,
		"tag":         r.Tag,
		"riot_id":     r.RiotID,
		"error":       r.Error,
	}
	if r.Outcome == types.OutcomeChecked {
		cells["acts_detected"] = strings.Join(r.ActsDetected, actsSeparator)
		cells["current_tier"] = tierCell(r.CurrentTier)
		cells["current_rank"] = r.CurrentRank
		cells[peakColumn(acts, "tier")] = tierCell(r.PeakTier)
		cells[peakColumn(acts, "rank")] = r.PeakRank
		for _, a := range r.PerAct {
			cells[actColumn(a.Act, "tier")] = tierCell(a.Tier)
			cells[actColumn(a.Act, "rank")] = a.Rank
		}
		if r.Suspicious != nil {
			cells["suspicious_smurf"] = strconv.FormatBool(*r.Suspicious)
		}
		cells["reason"] = r.Reason
	}

	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = cells[c]
	}
	return out
}

// WriteCSV writes rows as a CSV result table.
func WriteCSV(w io.Writer, rows []types.RowResult, acts int) error {
	cw := csv.NewWriter(w)
	cols := Columns(rows, acts)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(Record(r, cols, acts)); err != nil {
			return fmt.Errorf("write row %d: %w", r.Row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func peakColumn(acts int, suffix string) string {
	return fmt.Sprintf("peak_last_%d_acts_%s", acts, suffix)
}

func actColumn(act, suffix string) string {
	return "max_" + act + "_" + suffix
}

func tierCell(t *int) string {
	if t == nil {
		return ""
	}
	return strconv.Itoa(*t)
}
