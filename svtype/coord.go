package svtype

// Coord is a (reference id, position) pair, ordered the way BAM coordinates
// are ordered: by reference id first, then position. It plays the role
// grailbio/bio's encoding/bam.Coord plays for shard boundaries, but stays
// free of the protobuf machinery that package pulls in since nothing here
// needs to serialize a Coord on the wire.
type Coord struct {
	RefID int32
	Pos   int32
}

// LT reports whether c sorts strictly before o.
func (c Coord) LT(o Coord) bool {
	return c.RefID < o.RefID || (c.RefID == o.RefID && c.Pos < o.Pos)
}

// LE reports whether c sorts at or before o.
func (c Coord) LE(o Coord) bool { return !o.LT(c) }

// Equal reports coordinate equality.
func (c Coord) Equal(o Coord) bool { return c.RefID == o.RefID && c.Pos == o.Pos }
