package gtf

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"

	"github.com/yumyai/rmgtf/pkg/feature"
)

var ErrMissingFamily = errors.New("feature has no family_id attribute")

// ReadAll decodes a GTF written by Writer, or any GTF whose records carry a
// family_id attribute. Feature ids come from gene_id and fall back to the
// record's position in the file.
func ReadAll(r io.Reader) ([]feature.Feature, error) {
	gr := gff.NewReader(r)

	var out []feature.Feature
	for n := 1; ; n++ {
		ft, err := gr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("gtf record %d: %w", n, err)
		}
		gf, ok := ft.(*gff.Feature)
		if !ok {
			return nil, fmt.Errorf("gtf record %d: unexpected feature type %T", n, ft)
		}

		f, err := fromGFF(gf)
		if err != nil {
			return nil, fmt.Errorf("gtf record %d (%s:%d-%d): %w", n, gf.SeqName, gf.FeatStart+1, gf.FeatEnd, err)
		}
		if f.FeatureID == "" {
			f.FeatureID = "record_" + strconv.Itoa(n)
		}
		out = append(out, f)
	}
}

func fromGFF(gf *gff.Feature) (feature.Feature, error) {
	attr := func(tag string) string {
		return strings.Trim(strings.TrimSpace(gf.FeatAttributes.Get(tag)), `"`)
	}

	f := feature.Feature{
		SequenceName: gf.SeqName,
		Start:        gf.FeatStart + 1,
		End:          gf.FeatEnd,
		Strand:       fromSeqStrand(gf.FeatStrand),
		FeatureID:    attr("gene_id"),
		FamilyID:     attr("family_id"),
		Source:       gf.Source,
		LocusID:      attr("locus_id"),
		RepeatClass:  attr("repeat_class"),
	}
	if f.FamilyID == "" {
		return feature.Feature{}, ErrMissingFamily
	}
	if gf.FeatScore != nil {
		f.Score = *gf.FeatScore
	}
	if d := attr("divergence"); d != "" {
		v, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return feature.Feature{}, fmt.Errorf("divergence %q: %w", d, err)
		}
		f.Divergence = v
	}
	return f, nil
}
