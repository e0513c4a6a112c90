package labeling

import (
	"strings"

	"github.com/LCLAMEDIA/openorders/internal/model"
)

// GenericSampleMarker prefixes product codes of generic sample lines. Samples
// from anyone but the primary vendor are dropped before classification.
const GenericSampleMarker = "GENERIC-SAMPLE"

// PreprocessResult is the surviving rows plus the drop counts.
type PreprocessResult struct {
	Records                  []*model.OrderRecord
	RemovedReturns           int
	RemovedNonPrimarySamples int
}

// Preprocess removes returns (negative quantity) and generic samples not
// sourced from the primary vendor. Row order among survivors is preserved and
// no cell is mutated.
func Preprocess(records []*model.OrderRecord, primaryVendor string) PreprocessResult {
	result := PreprocessResult{Records: make([]*model.OrderRecord, 0, len(records))}

	for _, rec := range records {
		if rec.QtyOrdered < 0 {
			result.RemovedReturns++
			continue
		}
		if isNonPrimarySample(rec, primaryVendor) {
			result.RemovedNonPrimarySamples++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result
}

func isNonPrimarySample(rec *model.OrderRecord, primaryVendor string) bool {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(rec.ProductNum)), GenericSampleMarker) {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(rec.Vendor), primaryVendor)
}
