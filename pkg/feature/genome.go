package feature

// GenomeIndex maps sequence name to its length in bp. It is owned by the
// caller and only read here.
type GenomeIndex map[string]int64

// TotalLength is the sum of all sequence lengths.
func (g GenomeIndex) TotalLength() int64 {
	var total int64
	for _, l := range g {
		total += l
	}
	return total
}
