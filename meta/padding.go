package meta

// DecodePadding skips length bytes of a PADDING block, returning the byte
// count. The FLAC spec does not require padding to be zeroed, so no content
// validation is performed here, only that length bytes are actually present.
func DecodePadding(c *Cursor, length int) (int, error) {
	if _, err := c.ReadBytes(length); err != nil {
		return 0, err
	}
	return length, nil
}
