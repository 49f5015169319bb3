package vectorstore

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "http url with port",
			url:      "http://qdrant.internal:6333",
			wantHost: "qdrant.internal",
			wantPort: 6334,
		},
		{
			name:     "https url with port",
			url:      "https://qdrant.example.com:7000",
			wantHost: "qdrant.example.com",
			wantPort: 7001,
		},
		{
			name:     "no port falls back to grpc default",
			url:      "http://qdrant.internal",
			wantHost: "qdrant.internal",
			wantPort: 6334,
		},
		{
			name:     "empty url defaults to localhost",
			url:      "",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:    "invalid url",
			url:     "http://qdrant:port\x7f",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := parseEndpoint(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseEndpoint() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEndpoint() error = %v", err)
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("parseEndpoint(%q) = (%s, %d), want (%s, %d)", tt.url, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestPointID(t *testing.T) {
	first := PointID("handbook.pdf_0")
	second := PointID("handbook.pdf_0")
	other := PointID("handbook.pdf_1")

	if first != second {
		t.Errorf("PointID not deterministic: %s != %s", first, second)
	}
	if first == other {
		t.Errorf("distinct record IDs map to the same point ID %s", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("PointID %q is not a valid UUID: %v", first, err)
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		score float32
		want  float32
	}{
		{score: 0.123456, want: 0.1235},
		{score: 0.99999, want: 1},
		{score: 0.5, want: 0.5},
		{score: 0, want: 0},
	}

	for _, tt := range tests {
		if got := roundScore(tt.score); got != tt.want {
			t.Errorf("roundScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestPagesFromMeta(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []int
	}{
		{name: "int64 list", in: []any{int64(0), int64(3)}, want: []int{0, 3}},
		{name: "float64 list", in: []any{float64(1), float64(2)}, want: []int{1, 2}},
		{name: "mixed list skips non-numeric", in: []any{int64(0), "x", int(2)}, want: []int{0, 2}},
		{name: "not a list", in: "pages", want: nil},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagesFromMeta(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("pagesFromMeta(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pagesFromMeta(%v)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
