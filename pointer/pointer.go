package pointer

func FromAny[T any](v T) *T {
	return &v
}

func ToString(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}

func ToFloat64(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}
