package surql

type Option func(*encState)

// Pretty renders arrays and objects over several lines, indenting each
// level by n spaces.
func Pretty(n int) Option {
	return func(es *encState) { es.indent = n }
}

func WithColors(c *Colors) Option {
	return func(es *encState) {
		if c != nil {
			es.color = c.Color
		}
	}
}
