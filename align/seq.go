package align

// PackedSeq returns rec's nibble-packed sequence bytes as a plain []byte,
// suitable for svtype.DecodePackedSeq. sam.Doublet and byte share the same
// representation; this copies rather than reinterpreting the memory the way
// encoding/bam's UnsafeDoubletsToBytes does, since assembly only ever
// touches a handful of reads per SV and the copy is not on a hot path.
func PackedSeq(r *Record) []byte {
	out := make([]byte, len(r.Seq.Seq))
	for i, d := range r.Seq.Seq {
		out[i] = byte(d)
	}
	return out
}

// SeqLength returns the read's base-pair length.
func SeqLength(r *Record) int {
	return r.Seq.Length
}
