// Package md5sum provides the MD5 digest primitive used to cross-check the
// unencoded-audio signature stored in a FLAC STREAMINFO block.
package md5sum

import "crypto/md5"

// Sum returns the 16-byte MD5 digest of data.
func Sum(data []byte) [16]byte {
	return md5.Sum(data)
}
