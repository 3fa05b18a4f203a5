/*Package interval implements the region validity index (genome/region's
  default backing store): a per-reference set of disjoint, sorted BED
  intervals, queryable by sam.Header reference ID.
  (Note the 'union'.  Overlapping intervals are merged, not tracked
  separately.)
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
