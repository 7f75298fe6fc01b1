package burr

/*

Sample Puzzles

Three bundled puzzles that show the range of burr behavior.  oak
assembles with every piece in its numbered slot and identity
orientation and slides apart easily; walnut assembles only after
reordering and reorienting the pieces; gordian assembles but
interlocks, so no sequence of single-piece slides frees it.

*/

var sampleSummaries = []*Summary{
	{
		Name: "oak",
		Shapes: []string{
			"xx.xxx/xxx.xx/x..x.x/x.xx.x",
			"x....x/xxxxxx/x....x/xx..xx",
			"xxxxxx/x....x/xx.xxx/xxx..x",
			"xxxxxx/x...xx/xx..xx/x....x",
			"xx...x/xxxxxx/x....x/xxxxxx",
			"xxxxxx/xxxxxx/xxxxxx/xxxxxx",
		},
	},
	{
		Name: "walnut",
		Shapes: []string{
			"xxxxxx/xx..xx/x..x.x/x....x",
			"xx..xx/xxxxxx/xx..xx/xx.x.x",
			"xx..xx/xxxxxx/x..xxx/x..xxx",
			"x....x/x....x/xxxxxx/xx..xx",
			"xxxxxx/xxxxxx/xxxxxx/xxxxxx",
			"xxxxxx/xx.xxx/x....x/x....x",
		},
	},
	{
		Name: "gordian",
		Shapes: []string{
			"xxxxxx/xxx.xx/x....x/x.x..x",
			"xxxxxx/x..x.x/xxxxxx/x..x.x",
			"x....x/x.x..x/xxxxxx/xxxxxx",
			"xxxxxx/xxxxxx/xxxxxx/xxxxxx",
			"xxxxxx/xx..xx/x....x/x....x",
			"xx..xx/xxxxxx/xx...x/x....x",
		},
	},
}

// Samples returns the bundled sample puzzles.  The summaries are
// copies, so callers can modify them freely.
func Samples() []*Summary {
	out := make([]*Summary, len(sampleSummaries))
	for i, s := range sampleSummaries {
		out[i] = &Summary{Name: s.Name, Shapes: append([]string(nil), s.Shapes...)}
	}
	return out
}

// Sample returns the bundled sample puzzle with the given name,
// if there is one.
func Sample(name string) (*Summary, bool) {
	for _, s := range sampleSummaries {
		if s.Name == name {
			return &Summary{Name: s.Name, Shapes: append([]string(nil), s.Shapes...)}, true
		}
	}
	return nil, false
}
