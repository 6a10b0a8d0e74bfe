package label

import "strings"

const blanks = " \t"

// Splice repairs labels whose delimiters were split off into a neighboring
// run, e.g. ["Hello {", "name}"] becomes ["Hello ", "{name}"].
//
// It makes one greedy left-to-right pass over the runs of a single
// paragraph and only moves a delimiter between adjacent runs. A label
// spread over three or more runs is not repaired. The input slice is not
// modified.
func (f *Format) Splice(runs []string) []string {
	out := make([]string, len(runs))
	copy(out, runs)

	for i := range out {
		if i > 0 {
			prev := strings.TrimRight(out[i-1], blanks)
			cur := strings.TrimLeft(out[i], blanks)
			if strings.HasSuffix(prev, f.Open) && !strings.HasPrefix(cur, f.Open) {
				out[i-1] = strings.TrimSuffix(prev, f.Open)
				out[i] = f.Open + cur
			}
		}
		if i+1 < len(out) {
			next := strings.TrimLeft(out[i+1], blanks)
			cur := strings.TrimRight(out[i], blanks)
			if strings.HasPrefix(next, f.Close) && !strings.HasSuffix(cur, f.Close) {
				out[i+1] = strings.TrimPrefix(next, f.Close)
				out[i] = cur + f.Close
			}
		}
	}

	return out
}
