package bignum

import (
	"fmt"
	"strings"
)

// Hex returns the segments of x from most to least significant as
// space-separated four-digit hexadecimal groups.
func (x *Nat) Hex() string {
	if len(x.segs) == 0 {
		return "0000"
	}
	groups := make([]string, 0, len(x.segs))
	for i := len(x.segs) - 1; i >= 0; i-- {
		groups = append(groups, fmt.Sprintf("%04X", x.segs[i]))
	}
	return strings.Join(groups, " ")
}

// String returns the decimal representation of x.
func (x *Nat) String() string {
	if len(x.segs) == 0 {
		return "0"
	}

	var groups []uint16
	for rest := x; !rest.IsZero(); {
		var rem uint16
		rest, rem = rest.divSegment(10000)
		groups = append(groups, rem)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", groups[len(groups)-1])
	for i := len(groups) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%04d", groups[i])
	}
	return sb.String()
}
