package crypto

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/helix-rsa/helix/internal/pkg/bignum"
)

// VersionRecordSize is the encoded size of a Version in bytes.
const VersionRecordSize = 12

// Version identifies the format of key files and encrypted files.
type Version struct {
	Primary   uint32
	Secondary uint32
	Tertiary  uint32
}

// CurrentVersion is written into every file produced by this module.
var CurrentVersion = Version{Primary: 0, Secondary: 1, Tertiary: 0}

// String formats the version as "primary.secondary.tertiary".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Primary, v.Secondary, v.Tertiary)
}

// Compare orders versions lexicographically by component. It returns -1, 0 or +1.
func (v Version) Compare(o Version) int {
	for _, p := range [][2]uint32{
		{v.Primary, o.Primary},
		{v.Secondary, o.Secondary},
		{v.Tertiary, o.Tertiary},
	} {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// ParseVersion parses the output of Version.String.
func ParseVersion(s string) (Version, error) {
	var v Version
	var rest string
	n, _ := fmt.Sscanf(s, "%d.%d.%d%s", &v.Primary, &v.Secondary, &v.Tertiary, &rest)
	if n != 3 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	return v, nil
}

// WriteTo writes the three components as little-endian u32 values.
func (v Version) WriteTo(w io.Writer) (int64, error) {
	var buf [VersionRecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:], v.Primary)
	binary.LittleEndian.PutUint32(buf[4:], v.Secondary)
	binary.LittleEndian.PutUint32(buf[8:], v.Tertiary)

	n, err := w.Write(buf[:])
	if err != nil {
		return int64(n), fmt.Errorf("failed to write version: %w: %w", bignum.ErrShortWrite, err)
	}
	if n != len(buf) {
		return int64(n), fmt.Errorf("failed to write version: %w", bignum.ErrShortWrite)
	}
	return int64(n), nil
}

// ReadFrom reads a version record written by WriteTo.
func (v *Version) ReadFrom(r io.Reader) (int64, error) {
	var buf [VersionRecordSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), fmt.Errorf("failed to read version: %w: %w", bignum.ErrShortRead, err)
	}

	v.Primary = binary.LittleEndian.Uint32(buf[0:])
	v.Secondary = binary.LittleEndian.Uint32(buf[4:])
	v.Tertiary = binary.LittleEndian.Uint32(buf[8:])
	return int64(n), nil
}
