package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero falls back to default", in: 0, want: DefaultLimit},
		{name: "negative falls back to default", in: -5, want: DefaultLimit},
		{name: "within range passes through", in: 40, want: 40},
		{name: "over max is capped", in: 500, want: MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.in); got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Params{Limit: -1, Offset: -10})
	if got.Limit != DefaultLimit || got.Offset != 0 {
		t.Fatalf("unexpected params %+v", got)
	}

	got = Normalize(Params{Limit: 10, Offset: 30})
	if got.Limit != 10 || got.Offset != 30 {
		t.Fatalf("unexpected params %+v", got)
	}
}
