// GTF encoding of repeat features, Telescope compatible.

package gtf

import (
	"bufio"
	"io"
	"strconv"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/yumyai/rmgtf/pkg/feature"
)

// DefaultFeatureType is the GTF feature column; Telescope counts exons.
const DefaultFeatureType = "exon"

// Writer emits one GTF line per feature. Attributes are written as
// tag "value" pairs in a fixed order: gene_id, transcript_id, family_id,
// locus_id, length, repeat_class, divergence.
type Writer struct {
	bw          *bufio.Writer
	gw          *gff.Writer
	featureType string
}

func NewWriter(w io.Writer, featureType string) *Writer {
	if featureType == "" {
		featureType = DefaultFeatureType
	}
	bw := bufio.NewWriter(w)
	gw := gff.NewWriter(bw, 60, false)
	// SW scores are integers; the default %v prints 1e+06 for large ones.
	gw.Precision = 0
	return &Writer{
		bw:          bw,
		gw:          gw,
		featureType: featureType,
	}
}

// WriteHeader writes comment lines. It must come before the first feature.
func (w *Writer) WriteHeader(lines ...string) error {
	for _, l := range lines {
		if l != "" {
			l = " " + l
		}
		if _, err := w.bw.WriteString("#" + l + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Write(f feature.Feature) error {
	_, err := w.gw.Write(toGFF(f, w.featureType))
	return err
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}

func toGFF(f feature.Feature, featureType string) *gff.Feature {
	score := f.Score
	return &gff.Feature{
		SeqName:    f.SequenceName,
		Source:     f.Source,
		Feature:    featureType,
		FeatStart:  f.Start - 1, // gff.Feature is zero-based, half-open
		FeatEnd:    f.End,
		FeatScore:  &score,
		FeatStrand: toSeqStrand(f.Strand),
		FeatFrame:  gff.NoFrame,
		FeatAttributes: gff.Attributes{
			{Tag: "gene_id", Value: quote(f.FeatureID)},
			{Tag: "transcript_id", Value: quote(f.FeatureID)},
			{Tag: "family_id", Value: quote(f.FamilyID)},
			{Tag: "locus_id", Value: quote(f.LocusID)},
			{Tag: "length", Value: quote(strconv.Itoa(f.Length()))},
			{Tag: "repeat_class", Value: quote(f.RepeatClass)},
			{Tag: "divergence", Value: quote(strconv.FormatFloat(f.Divergence, 'f', -1, 64))},
		},
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

func toSeqStrand(s feature.Strand) seq.Strand {
	switch s {
	case feature.StrandPlus:
		return seq.Plus
	case feature.StrandMinus:
		return seq.Minus
	}
	return seq.None
}

func fromSeqStrand(s seq.Strand) feature.Strand {
	switch s {
	case seq.Plus:
		return feature.StrandPlus
	case seq.Minus:
		return feature.StrandMinus
	}
	return feature.StrandUnknown
}
