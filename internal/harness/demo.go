package harness

import (
	"fmt"
	"strings"

	"github.com/tangledbytes/go-vec/pkg/vec"
)

// Demo walks through the container's basic contract and logs each step:
// three appends with the doubling growth sequence, an erase, an insert.
func (r *Runner) Demo() error {
	v := vec.New[int]()
	r.log.Info().Int("len", v.Len()).Int("cap", v.Cap()).Msg("fresh vector")

	for _, n := range []int{1, 2, 3} {
		if err := v.PushBack(n); err != nil {
			return err
		}
		r.log.Info().Int("pushed", n).Int("len", v.Len()).Int("cap", v.Cap()).Msg("append")
	}

	if _, err := v.Erase(1); err != nil {
		return err
	}
	r.log.Info().Str("contents", render(v)).Msg("erased position 1")

	it, err := v.Insert(1, 5)
	if err != nil {
		return err
	}
	r.log.Info().Str("contents", render(v)).Int("at", v.Begin().Distance(it)).Msg("inserted 5 at position 1")
	return nil
}

func render(v *vec.Vector[int]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range v.All() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", *p)
	}
	b.WriteByte(']')
	return b.String()
}
