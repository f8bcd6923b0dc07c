package parse

import (
	"reflect"
	"testing"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "json array",
			input: `["a","b","c"]`,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "comma separated",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "json string containing commas",
			input: `"a,b"`,
			want:  []string{"a", "b"},
		},
		{
			name:  "single plain value",
			input: "a",
			want:  []string{"a"},
		},
		{
			name:  "whitespace around entries",
			input: " a , b ",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only commas",
			input: ",,,",
			want:  nil,
		},
		{
			name:  "json array with empty entries dropped",
			input: `["a","","b"]`,
			want:  []string{"a", "b"},
		},
		{
			name:  "equivalent shapes decode identically",
			input: `["x","y"]`,
			want:  StringList("x,y"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StringList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "no values",
			values: nil,
			want:   nil,
		},
		{
			name:   "single value decoded",
			values: []string{`["a","b"]`},
			want:   []string{"a", "b"},
		},
		{
			name:   "repeated fields pass through",
			values: []string{"a", "b"},
			want:   []string{"a", "b"},
		},
		{
			name:   "repeated fields drop empties",
			values: []string{"a", "", " "},
			want:   []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := List(tt.values)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestTagSpecs(t *testing.T) {
	ar := "تقنية"

	tests := []struct {
		name    string
		input   string
		want    []TagSpec
		wantErr bool
	}{
		{
			name:  "json array",
			input: `[{"name":"tech"},{"name":"sports"}]`,
			want:  []TagSpec{{Name: "tech"}, {Name: "sports"}},
		},
		{
			name:  "single object wrapped",
			input: `{"name":"tech"}`,
			want:  []TagSpec{{Name: "tech"}},
		},
		{
			name:  "missing brackets recovered",
			input: `{"name":"tech"},{"name":"sports"}`,
			want:  []TagSpec{{Name: "tech"}, {Name: "sports"}},
		},
		{
			name:  "bilingual name pair",
			input: `[{"name":"tech","nameAr":"تقنية"}]`,
			want:  []TagSpec{{Name: "tech", NameAr: &ar}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "garbage input",
			input:   "not json at all",
			wantErr: true,
		},
		{
			name:    "half-open object",
			input:   `{"name":"tech"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TagSpecs(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TagSpecs(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("TagSpecs(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TagSpecs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTagSpecList(t *testing.T) {
	t.Run("repeated fields combined", func(t *testing.T) {
		got, err := TagSpecList([]string{`{"name":"a"}`, `{"name":"b"}`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []TagSpec{{Name: "a"}, {Name: "b"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("error in any field fails the whole list", func(t *testing.T) {
		if _, err := TagSpecList([]string{`{"name":"a"}`, "garbage"}); err == nil {
			t.Error("expected error for malformed entry")
		}
	})
}
